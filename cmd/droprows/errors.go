package main

import (
	"fmt"

	"github.com/JonMunkholm/droprows/internal/core"
	"github.com/JonMunkholm/droprows/internal/i18n"
)

// describeError formats err as "message (Code: X). action" for errors
// with a known code, in the language named by $LANG when a catalog exists
// for it. Other errors print as they are.
func describeError(err error) string {
	msg := core.MapError(err)
	if !msg.IsUserFacing() {
		return "Error: " + err.Error()
	}

	catalog, loadErr := i18n.Load(i18n.DefaultLanguage)
	if loadErr != nil {
		return "Error: " + err.Error()
	}
	lang := catalog.Match(envLanguage())
	message, action := catalog.Explain(lang, msg.Key, msg)
	return fmt.Sprintf("Error: %s (Code: %s). %s", message, msg.Code, action)
}

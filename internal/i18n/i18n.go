// Package i18n renders structured errors as localized text.
//
// Message catalogs are TOML files, one per language, named by BCP 47 tag
// (en.toml, de.toml). Nested tables flatten to dotted keys:
//
//	[messages]
//	backwards_range = "\"{{.Value}}\" is backwards"
//
// is looked up as "messages.backwards_range". Messages are text/template
// strings executed with the caller's data.
//
// The default catalogs are embedded in the binary; LoadFS accepts any
// directory with the same layout.
package i18n

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"
	"text/template"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var embedded embed.FS

// DefaultLanguage is used when a request names no supported language.
const DefaultLanguage = "en"

// Catalog holds the messages of every loaded language.
type Catalog struct {
	tags     []language.Tag // tags[0] is the default
	matcher  language.Matcher
	messages map[language.Tag]map[string]string

	mu        sync.Mutex
	templates map[string]*template.Template
}

// Load returns the embedded catalogs with defaultLang as fallback.
func Load(defaultLang string) (*Catalog, error) {
	sub, err := fs.Sub(embedded, "locales")
	if err != nil {
		return nil, err
	}
	return LoadFS(sub, defaultLang)
}

// LoadFS reads every *.toml file at the root of fsys. The file for
// defaultLang must exist.
func LoadFS(fsys fs.FS, defaultLang string) (*Catalog, error) {
	if defaultLang == "" {
		defaultLang = DefaultLanguage
	}
	defaultTag, err := language.Parse(defaultLang)
	if err != nil {
		return nil, fmt.Errorf("default language %q: %w", defaultLang, err)
	}

	files, err := fs.Glob(fsys, "*.toml")
	if err != nil {
		return nil, fmt.Errorf("list catalogs: %w", err)
	}
	sort.Strings(files)

	c := &Catalog{
		messages:  make(map[language.Tag]map[string]string),
		templates: make(map[string]*template.Template),
	}

	var others []language.Tag
	for _, file := range files {
		tag, err := language.Parse(strings.TrimSuffix(path.Base(file), ".toml"))
		if err != nil {
			return nil, fmt.Errorf("catalog %s: %w", file, err)
		}

		data, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", file, err)
		}
		var raw map[string]any
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", file, err)
		}

		msgs := make(map[string]string)
		flatten("", raw, msgs)
		c.messages[tag] = msgs

		if tag != defaultTag {
			others = append(others, tag)
		}
	}

	if _, ok := c.messages[defaultTag]; !ok {
		return nil, fmt.Errorf("no catalog for default language %q", defaultLang)
	}

	c.tags = append([]language.Tag{defaultTag}, others...)
	c.matcher = language.NewMatcher(c.tags)
	return c, nil
}

func flatten(prefix string, in map[string]any, out map[string]string) {
	for k, v := range in {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]any:
			flatten(key, val, out)
		case string:
			out[key] = val
		default:
			out[key] = fmt.Sprint(val)
		}
	}
}

// Languages returns the loaded languages, default first.
func (c *Catalog) Languages() []language.Tag {
	return append([]language.Tag(nil), c.tags...)
}

// Default returns the fallback language.
func (c *Catalog) Default() language.Tag {
	return c.tags[0]
}

// Match picks the best loaded language for an Accept-Language header
// value. Unparseable or unmatched headers get the default language.
func (c *Catalog) Match(acceptLanguage string) language.Tag {
	wanted, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(wanted) == 0 {
		return c.Default()
	}
	_, idx, conf := c.matcher.Match(wanted...)
	if conf == language.No {
		return c.Default()
	}
	return c.tags[idx]
}

// Translate renders key in lang with data. Keys missing from lang fall
// back to the default language, then to the key itself.
func (c *Catalog) Translate(lang language.Tag, key string, data any) string {
	msg, ok := c.messages[lang][key]
	if !ok {
		lang = c.Default()
		msg, ok = c.messages[lang][key]
	}
	if !ok {
		return key
	}
	if !strings.Contains(msg, "{{") {
		return msg
	}

	tmpl, err := c.template(lang, key, msg)
	if err != nil {
		return msg
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return msg
	}
	return buf.String()
}

func (c *Catalog) template(lang language.Tag, key, msg string) (*template.Template, error) {
	id := lang.String() + "/" + key

	c.mu.Lock()
	defer c.mu.Unlock()

	if t, ok := c.templates[id]; ok {
		return t, nil
	}
	t, err := template.New(id).Option("missingkey=zero").Parse(msg)
	if err != nil {
		return nil, err
	}
	c.templates[id] = t
	return t, nil
}

// Explain returns the message and the suggested action for key, looked up
// as "messages.<key>" and "actions.<key>".
func (c *Catalog) Explain(lang language.Tag, key string, data any) (message, action string) {
	return c.Translate(lang, "messages."+key, data), c.Translate(lang, "actions."+key, data)
}

package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strings"

	"github.com/JonMunkholm/droprows/internal/core"
	"github.com/JonMunkholm/droprows/internal/params"
	"github.com/JonMunkholm/droprows/internal/table"
)

// multipartMemory is how much of a multipart upload is kept in memory
// before spilling to temporary files.
const multipartMemory = 32 << 20

// RenderRequest is the JSON body of POST /api/render. Params may use any
// stored version.
type RenderRequest struct {
	Table  *table.Table  `json:"table"`
	Params params.Stored `json:"params"`
}

// RenderResponse is the JSON result of a render.
type RenderResponse struct {
	Table   *table.Table `json:"table"`
	RowsIn  int          `json:"rowsIn"`
	RowsOut int          `json:"rowsOut"`
}

// handleRender accepts either a JSON RenderRequest or a multipart form
// with a CSV "file", a "rows" spec, and any number of "category" column
// names.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Render.MaxUploadSize)

	var (
		in     *table.Table
		stored params.Stored
		err    error
	)
	if isMultipart(r) {
		in, stored, err = readRenderForm(r)
	} else {
		var req RenderRequest
		err = decodeJSON(r, &req)
		in, stored = req.Table, req.Params
	}
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	out, err := s.service.RenderStored(r.Context(), in, stored)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.writeTable(w, r, in, out)
}

func readRenderForm(r *http.Request) (*table.Table, params.Stored, error) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		return nil, params.Stored{}, requestError(err)
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		return nil, params.Stored{}, fmt.Errorf("%w: file: %v", core.ErrBadRequest, err)
	}
	defer file.Close()

	t, err := table.ReadCSV(file, table.ReadOptions{Categories: r.MultipartForm.Value["category"]})
	if err != nil {
		return nil, params.Stored{}, err
	}
	return t, params.Stored{Rows: r.FormValue("rows")}, nil
}

// writeTable sends out as CSV when the client accepts text/csv and as a
// RenderResponse otherwise.
func (s *Server) writeTable(w http.ResponseWriter, r *http.Request, in, out *table.Table) {
	if strings.Contains(r.Header.Get("Accept"), "text/csv") {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="rows.csv"`)
		if err := table.WriteCSV(w, out); err != nil {
			logFor(r).Error("csv write failed", "error", err)
		}
		return
	}
	writeJSON(w, r, http.StatusOK, RenderResponse{
		Table:   out,
		RowsIn:  in.NumRows(),
		RowsOut: out.NumRows(),
	})
}

func isMultipart(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "multipart/form-data"
}

// decodeJSON reads exactly one JSON value into v.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return requestError(err)
	}
	if dec.More() {
		return fmt.Errorf("%w: trailing data after JSON body", core.ErrBadRequest)
	}
	return nil
}

// requestError classifies a body read failure as too large or malformed.
func requestError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return fmt.Errorf("%w: limit %d bytes", core.ErrFileTooLarge, tooLarge.Limit)
	}
	return fmt.Errorf("%w: %v", core.ErrBadRequest, err)
}

package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"

	"github.com/Rnyoms/LHC-NYOM/pkg/boundary"
	"github.com/Rnyoms/LHC-NYOM/pkg/export"
	"github.com/Rnyoms/LHC-NYOM/pkg/pipeline"
	"github.com/Rnyoms/LHC-NYOM/pkg/simulate"
	"github.com/Rnyoms/LHC-NYOM/pkg/spec"
	"github.com/Rnyoms/LHC-NYOM/pkg/validation"
)

// maxUpload bounds the multipart body of a simulate request.
const maxUpload = 32 << 20

// Server serves boundary uploads and simulation runs over HTTP.
type Server struct {
	port int
	log  *slog.Logger
}

// New creates a server listening on port.
func New(port int, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{port: port, log: logger}
}

// Handler returns the routed API.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/spec", s.handleSpec)
	mux.HandleFunc("POST /api/validate", s.handleValidate)
	mux.HandleFunc("POST /api/simulate", s.handleSimulate)
	mux.HandleFunc("GET /{$}", s.handleIndex)
	return mux
}

// Start launches the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.log.Info("LHC server starting", "url", "http://localhost"+addr)
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	fmt.Fprint(w, `<!DOCTYPE html>
<html><head><title>LHC Simulator</title></head>
<body style="margin:0;background:#10231a;color:#fff;font-family:system-ui;display:flex;align-items:center;justify-content:center;height:100vh">
<div style="text-align:center">
<h1>Simulasi LHC + Jalur ITSP</h1>
<form method="post" action="/api/simulate?format=xlsx" enctype="multipart/form-data">
<p><label>Shapefile petak (.zip) <input type="file" name="boundary" accept=".zip,.geojson,.json" required></label></p>
<p><label>plot.yaml (optional) <input type="file" name="config" accept=".yaml,.yml"></label></p>
<p><button type="submit">Jalankan Simulasi</button></p>
</form>
</div>
</body></html>`)
}

func (s *Server) handleSpec(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, spec.Defaults())
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxUpload))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("reading body: %w", err))
		return
	}
	plotSpec, err := spec.Parse(data)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	report := validation.ValidateSchema(plotSpec)
	status := http.StatusOK
	if !report.Valid {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, report)
}

type simulateResponse struct {
	Result *pipeline.Result   `json:"result,omitempty"`
	Report *validation.Report `json:"report"`
	Error  string             `json:"error,omitempty"`
}

func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUpload); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("parsing upload: %w", err))
		return
	}

	plotSpec, err := formSpec(r)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	if name := r.FormValue("name"); name != "" {
		plotSpec.Name = name
	}

	file, header, err := r.FormFile("boundary")
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("boundary file is required: %w", err))
		return
	}
	defer file.Close()
	b, err := boundary.Load(file, header.Filename)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	res, report, err := pipeline.Run(r.Context(), plotSpec, b, pipeline.Options{})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, pipeline.ErrInvalidSpec) || errors.Is(err, simulate.ErrNoTrees) {
			status = http.StatusUnprocessableEntity
		}
		s.log.Warn("simulation failed", "plot", plotSpec.Name, "err", err)
		writeJSON(w, status, simulateResponse{Result: res, Report: report, Error: err.Error()})
		return
	}
	s.log.Info("simulation complete", "run", res.RunID, "plot", res.Plot, "seed", res.Seed, "trees", len(res.Trees))

	format := r.URL.Query().Get("format")
	if format == "" || format == "json" {
		writeJSON(w, http.StatusOK, simulateResponse{Result: res, Report: report})
		return
	}
	f, err := export.ParseFormat(format)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, f, res); err != nil {
		s.log.Error("export failed", "format", f, "err", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", contentType(f))
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": export.FileName(res.Plot, f),
	}))
	w.Header().Set("X-Run-ID", res.RunID.String())
	w.Write(buf.Bytes())
}

// formSpec reads the optional "config" part as YAML, falling back to the
// default plot spec.
func formSpec(r *http.Request) (*spec.PlotSpec, error) {
	file, _, err := r.FormFile("config")
	if errors.Is(err, http.ErrMissingFile) {
		if v := r.FormValue("config"); v != "" {
			return spec.Parse([]byte(v))
		}
		return spec.Defaults(), nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return spec.Parse(data)
}

func contentType(f export.Format) string {
	switch f {
	case export.FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case export.FormatCSV:
		return "text/csv"
	case export.FormatGeoJSON:
		return "application/geo+json"
	}
	return "application/octet-stream"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/matzehuels/foodtree/pkg/buildinfo"
	"github.com/matzehuels/foodtree/pkg/cache"
	apperrors "github.com/matzehuels/foodtree/pkg/errors"
	treeio "github.com/matzehuels/foodtree/pkg/io"
	"github.com/matzehuels/foodtree/pkg/render/nodelink"
	"github.com/matzehuels/foodtree/pkg/report"
)

type errorBody struct {
	Error struct {
		Code    apperrors.Code `json:"code"`
		Message string         `json:"message"`
	} `json:"error"`
}

func statusFor(code apperrors.Code) int {
	switch code {
	case apperrors.ErrCodeNodeNotFound, apperrors.ErrCodeNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeInvalidInput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	var body errorBody
	body.Error.Code = apperrors.GetCode(err)
	if body.Error.Code == "" {
		body.Error.Code = apperrors.ErrCodeInternal
	}
	body.Error.Message = apperrors.UserMessage(err)
	writeJSON(w, statusFor(body.Error.Code), body)
}

func requiredParam(r *http.Request, name string) (string, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return "", apperrors.New(apperrors.ErrCodeInvalidInput, "query parameter %q is required", name)
	}
	return v, nil
}

func (s *Server) topK(r *http.Request) (int, error) {
	v := r.URL.Query().Get("k")
	if v == "" {
		return s.cfg.TopK, nil
	}
	k, err := strconv.Atoi(v)
	if err != nil || k < 0 {
		return 0, apperrors.New(apperrors.ErrCodeInvalidInput, "k must be a non-negative integer, got %q", v)
	}
	return k, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	t := s.cfg.Engine.Tree()
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"root":   t.Root(),
		"nodes":  t.NodeCount(),
		"build":  buildinfo.Get(),
	})
}

func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := treeio.WriteJSON(s.cfg.Engine.Tree(), w); err != nil {
		s.cfg.Logger.Error("write tree", "err", err)
	}
}

func (s *Server) handleTrace(w http.ResponseWriter, r *http.Request) {
	node, err := requiredParam(r, "node")
	if err != nil {
		writeError(w, err)
		return
	}
	path, err := s.cfg.Engine.Trace(r.Context(), node)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"node": node, "path": path, "depth": len(path) - 1})
}

func (s *Server) handleDepth(w http.ResponseWriter, r *http.Request) {
	node := r.URL.Query().Get("node")
	if node == "" {
		writeJSON(w, http.StatusOK, map[string]any{"categories": s.cfg.Engine.CategoryDepths(r.Context())})
		return
	}
	d, err := s.cfg.Engine.MaxDepthFrom(r.Context(), node)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"node": node, "max_depth": d})
}

func (s *Server) handleLevels(w http.ResponseWriter, r *http.Request) {
	census, err := s.cfg.Engine.LevelCounts(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	levels := make([]report.Level, len(census))
	for d, n := range census {
		levels[d] = report.Level{Depth: d, Count: n}
	}
	writeJSON(w, http.StatusOK, map[string]any{"levels": levels, "total": census.Total()})
}

func (s *Server) handleRank(w http.ResponseWriter, r *http.Request) {
	k, err := s.topK(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"k": k, "top": s.cfg.Engine.TopCategories(r.Context(), k)})
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	k, err := s.topK(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if k == 0 {
		k = -1
	}
	rep, err := report.Generate(r.Context(), s.cfg.Engine, report.Options{
		Traces: r.URL.Query()["trace"],
		TopK:   k,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

// diagramOptions reads ?highlight= and ?detailed= into render options.
func (s *Server) diagramOptions(r *http.Request) (nodelink.Options, error) {
	opts := nodelink.Options{Title: s.cfg.Title}
	if v := r.URL.Query().Get("detailed"); v != "" {
		d, err := strconv.ParseBool(v)
		if err != nil {
			return opts, apperrors.New(apperrors.ErrCodeInvalidInput, "detailed must be a boolean, got %q", v)
		}
		opts.Detailed = d
	}
	if target := r.URL.Query().Get("highlight"); target != "" {
		path, err := s.cfg.Engine.Trace(r.Context(), target)
		if err != nil {
			return opts, err
		}
		opts.Highlight = path
	}
	return opts, nil
}

func (s *Server) handleDOT(w http.ResponseWriter, r *http.Request) {
	opts, err := s.diagramOptions(r)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/vnd.graphviz; charset=utf-8")
	_, _ = w.Write([]byte(nodelink.ToDOT(s.cfg.Engine.Tree(), opts)))
}

func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	opts, err := s.diagramOptions(r)
	if err != nil {
		writeError(w, err)
		return
	}
	dot := nodelink.ToDOT(s.cfg.Engine.Tree(), opts)
	key := s.cfg.Keyer.DiagramKey(cache.DOTHash(dot), cache.DiagramKeyOpts{Format: "svg"})

	svg, hit, err := cache.Remember(r.Context(), s.cfg.Cache, key, s.cfg.CacheTTL, func() ([]byte, error) {
		return nodelink.RenderSVG(r.Context(), dot)
	})
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	if hit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	_, _ = w.Write(svg)
}

package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/AmKilopa/KlpGIT"
	klpfs "github.com/AmKilopa/KlpGIT/fs"
)

var errSuggestDisabled = errors.New("commit message suggestions are disabled")

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	info := s.project
	info.HasGit = s.repo.HasRepo()
	writeJSON(w, http.StatusOK, info)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	status, err := s.repo.Status(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	entries, err := s.tree.Tree()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	entries = klpfs.Filter(entries, r.URL.Query().Get("q"))
	if entries == nil {
		entries = []klpgit.TreeEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleDiff(w http.ResponseWriter, r *http.Request) {
	diff, err := s.fileDiff(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"diff": diff})
}

func (s *Server) handleRenderDiff(w http.ResponseWriter, r *http.Request) {
	diff, err := s.fileDiff(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	rendered := klpgit.RenderDiff(diff)
	if rendered.Lines == nil {
		rendered.Lines = []klpgit.DiffLine{}
	}
	writeJSON(w, http.StatusOK, rendered)
}

// fileDiff returns the diff of the ?file= parameter, empty when none is given.
func (s *Server) fileDiff(r *http.Request) (string, error) {
	file := r.URL.Query().Get("file")
	if file == "" {
		return "", nil
	}
	return s.repo.Diff(r.Context(), file)
}

func (s *Server) handleChanges(w http.ResponseWriter, r *http.Request) {
	text, err := s.repo.AllDiff(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	diff, err := s.parser.Parse(strings.NewReader(text))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	changes := diff.Changes()
	if changes == nil {
		changes = []klpgit.FileChange{}
	}
	writeJSON(w, http.StatusOK, changes)
}

func (s *Server) handleFile(w http.ResponseWriter, r *http.Request) {
	content, ok := s.readFile(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, content)
}

func (s *Server) handleHighlight(w http.ResponseWriter, r *http.Request) {
	content, ok := s.readFile(w, r)
	if !ok {
		return
	}
	lines := [][]klpgit.Token{}
	if content.Content != "" {
		lines = s.highlighter.HighlightLines(content.Content, content.Language)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"language":     content.Language,
		"languageName": content.Name,
		"lines":        lines,
	})
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	content, ok := s.readFile(w, r)
	if !ok {
		return
	}
	issues := klpgit.Validate(content.Content)
	if issues == nil {
		issues = []klpgit.ValidationIssue{}
	}
	lines := 0
	if content.Content != "" {
		lines = strings.Count(content.Content, "\n") + 1
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"lines":  lines,
		"issues": issues,
	})
}

// readFile reads the ?path= parameter, writing the error response on failure.
func (s *Server) readFile(w http.ResponseWriter, r *http.Request) (*klpgit.FileContent, bool) {
	path := r.URL.Query().Get("path")
	if path == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "path required"})
		return nil, false
	}
	content, err := s.files.ReadFile(path)
	if err != nil {
		s.writeError(w, r, err)
		return nil, false
	}
	return content, true
}

type filesRequest struct {
	Files []string `json:"files"`
}

func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request) {
	var req filesRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.repo.Add(r.Context(), selection(req.Files)); err != nil {
		s.writeError(w, r, err)
		return
	}
	status, err := s.repo.Status(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if s.hub != nil {
		s.hub.Broadcast("status", status)
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "status": status})
}

type submitRequest struct {
	Message string   `json:"message"`
	Files   []string `json:"files"`
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		s.writeError(w, r, klpgit.ErrEmptyMessage)
		return
	}
	result, err := s.repo.CommitAndPush(r.Context(), req.Message, selection(req.Files))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.logger.Info("committed", "hash", result.Hash, "branch", result.Branch)
	s.BroadcastStatus(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "hash": result.Hash, "branch": result.Branch})
}

func (s *Server) handleInit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RemoteURL string `json:"remoteUrl"`
	}
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.repo.Init(r.Context(), strings.TrimSpace(req.RemoteURL)); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.BroadcastStatus(r.Context())
	writeJSON(w, http.StatusOK, okResponse{OK: true})
}

func (s *Server) handleDisconnect(w http.ResponseWriter, r *http.Request) {
	if err := s.repo.RemoveRemote(r.Context()); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.BroadcastStatus(r.Context())
	writeJSON(w, http.StatusOK, okResponse{OK: true})
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	if s.suggester == nil {
		s.writeError(w, r, errSuggestDisabled)
		return
	}
	text, err := s.repo.StagedDiff(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	diff, err := s.parser.Parse(strings.NewReader(text))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	msg, err := s.suggester.Suggest(r.Context(), diff)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": msg})
}

// selection defaults an empty file list to the whole tree.
func selection(files []string) []string {
	if len(files) == 0 {
		return []string{klpgit.AllFiles}
	}
	return files
}

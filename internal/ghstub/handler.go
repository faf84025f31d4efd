package ghstub

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
)

const docsURL = "https://docs.github.com/rest"

// Fixtures holds raw JSON bodies keyed the way the handlers look them up.
type Fixtures struct {
	// Token is the bearer token every request must carry. Empty accepts any token.
	Token string
	// Search maps a q value to a search/repositories body.
	Search map[string]string
	// Repos maps "owner/repo" to a repository body.
	Repos map[string]string
	// Commits maps "owner/repo" to a commit listing body.
	Commits map[string]string
	// Contents maps "owner/repo:path" (path without leading or trailing slashes) to a body.
	Contents map[string]string
}

func ContentKey(owner, repo, path string) string {
	return owner + "/" + repo + ":" + strings.Trim(path, "/")
}

type Handler struct {
	server *Server
}

func NewHandler(server *Server) *Handler {
	return &Handler{server: server}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/search/repositories", h.searchRepositories).Methods("GET")
	r.HandleFunc("/repos/{owner}/{repo}", h.getRepository).Methods("GET")
	r.HandleFunc("/repos/{owner}/{repo}/commits", h.listCommits).Methods("GET")
	r.HandleFunc("/repos/{owner}/{repo}/contents", h.getContents).Methods("GET")
	r.HandleFunc("/repos/{owner}/{repo}/contents/{path:.*}", h.getContents).Methods("GET")
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte(body))
}

func notFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, `{"message":"Not Found","documentation_url":"`+docsURL+`","status":"404"}`)
}

// authorized writes a 401 and returns false when the bearer token does not match.
func (h *Handler) authorized(w http.ResponseWriter, r *http.Request, f Fixtures) bool {
	if f.Token == "" || r.Header.Get("Authorization") == "Bearer "+f.Token {
		return true
	}
	writeJSON(w, http.StatusUnauthorized, `{"message":"Bad credentials","documentation_url":"`+docsURL+`","status":"401"}`)
	return false
}

func (h *Handler) serve(w http.ResponseWriter, r *http.Request, table map[string]string, key string) {
	body, ok := table[key]
	if !ok {
		notFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, body)
}

func (h *Handler) searchRepositories(w http.ResponseWriter, r *http.Request) {
	f := h.server.snapshot()
	if !h.authorized(w, r, f) {
		return
	}

	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusUnprocessableEntity,
			`{"message":"Validation Failed","errors":[{"resource":"Search","field":"q","code":"missing"}],"documentation_url":"`+docsURL+`","status":"422"}`)
		return
	}

	body, ok := f.Search[q]
	if !ok {
		body = `{"total_count":0,"incomplete_results":false,"items":[]}`
	}
	writeJSON(w, http.StatusOK, body)
}

func (h *Handler) getRepository(w http.ResponseWriter, r *http.Request) {
	f := h.server.snapshot()
	if !h.authorized(w, r, f) {
		return
	}

	vars := mux.Vars(r)
	h.serve(w, r, f.Repos, vars["owner"]+"/"+vars["repo"])
}

func (h *Handler) listCommits(w http.ResponseWriter, r *http.Request) {
	f := h.server.snapshot()
	if !h.authorized(w, r, f) {
		return
	}

	vars := mux.Vars(r)
	h.serve(w, r, f.Commits, vars["owner"]+"/"+vars["repo"])
}

func (h *Handler) getContents(w http.ResponseWriter, r *http.Request) {
	f := h.server.snapshot()
	if !h.authorized(w, r, f) {
		return
	}

	vars := mux.Vars(r)
	h.serve(w, r, f.Contents, ContentKey(vars["owner"], vars["repo"], vars["path"]))
}

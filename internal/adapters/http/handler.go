package httpadapter

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/dravina/dravina-agent/internal/app/advisor"
	memorysvc "github.com/dravina/dravina-agent/internal/app/memory"
	"github.com/dravina/dravina-agent/internal/domain"
)

type Server struct {
	advisor *advisor.Service
	memory  *memorysvc.Service
}

func NewServer(advisorSvc *advisor.Service, memorySvc *memorysvc.Service) http.Handler {
	s := &Server{advisor: advisorSvc, memory: memorySvc}
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", s.handleHealthz)

	// /advice → run one advisory session (POST)
	mux.HandleFunc("/advice", s.handleAdvice)

	// /users/{id}/memories → GET: list a user's recent memories
	mux.HandleFunc("/users/", s.handleUserWithID)

	return chainMiddlewares(mux, withLogging, withCORS, withRequestID)
}

// ─────────────────────────────────────────────
// DTOs (request/response)
// ─────────────────────────────────────────────

type adviceRequest struct {
	UserID string `json:"user_id"`
	Query  string `json:"query"`
}

type adviceResponse struct {
	Advice  string          `json:"advice"`
	Profile profileResponse `json:"profile"`
	Outcome string          `json:"outcome"`
	Rounds  int             `json:"rounds"`
}

type profileResponse struct {
	RiskTolerance string `json:"risk_tolerance"`
	TimeHorizon   string `json:"time_horizon"`
}

type memoryResponse struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Role      string    `json:"role"`
	Tag       string    `json:"tag,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type memoriesResponse struct {
	UserID   string           `json:"user_id"`
	Memories []memoryResponse `json:"memories"`
}

// ─────────────────────────────────────────────
// Concrete handlers
// ─────────────────────────────────────────────

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleAdvice(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req adviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	if req.UserID == "" {
		badRequest(w, "user_id is required")
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		badRequest(w, "query is required")
		return
	}

	out, err := s.advisor.Advise(r.Context(), advisor.AdviseInput{
		UserID: domain.UserID(req.UserID),
		Query:  req.Query,
	})
	if err != nil {
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, adviceResponse{
		Advice: out.Advice,
		Profile: profileResponse{
			RiskTolerance: string(out.Profile.RiskTolerance),
			TimeHorizon:   string(out.Profile.TimeHorizon),
		},
		Outcome: string(out.Outcome),
		Rounds:  out.Rounds,
	})
}

// /users/{id}/memories
func (s *Server) handleUserWithID(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/users/")
	parts := strings.Split(path, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] != "memories" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	userID := domain.UserID(parts[0])
	items := s.memory.FetchRecent(r.Context(), userID)

	resp := memoriesResponse{
		UserID:   parts[0],
		Memories: make([]memoryResponse, 0, len(items)),
	}
	for _, item := range items {
		resp.Memories = append(resp.Memories, memoryResponse{
			ID:        item.ID,
			Content:   item.Content,
			Role:      string(item.Role),
			Tag:       item.Tag,
			CreatedAt: item.CreatedAt,
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

// ─────────────────────────────────────────────
// HTTP Helpers
// ─────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{
		"error": msg,
	})
}

func internalError(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error": err.Error(),
	})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]string{
		"error": "method not allowed",
	})
}

package internal

import (
	"embed"
	"encoding/json"
	"frog-pond/contract"
	"frog-pond/domain"
	"frog-pond/errors"
	"frog-pond/repositories"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/samber/lo"
)

//go:embed pond.html
var templatesFS embed.FS

// MessageForm is what the chat box posts.
type MessageForm struct {
	User string `validate:"required"`
	Text string `validate:"required"`
}

type FrogView struct {
	ID      domain.FrogID `json:"id"`
	Mood    domain.Mood   `json:"mood"`
	Action  domain.Action `json:"action"`
	X       int           `json:"x"`
	Y       int           `json:"y"`
	Thought *string       `json:"thought"`
}

type MessageView struct {
	ID     string    `json:"id"`
	Author string    `json:"author"`
	Text   string    `json:"text"`
	At     time.Time `json:"at"`
}

type PondView struct {
	Frogs              []FrogView    `json:"frogs"`
	Messages           []MessageView `json:"messages"`
	RibbitCount        int           `json:"ribbit_count"`
	Threshold          int           `json:"threshold"`
	ToadfatherSummoned bool          `json:"toadfather_summoned"`
}

type MessagePage struct {
	Messages   []repositories.DiskMessage `json:"messages"`
	NextCursor *string                    `json:"next_cursor"`
}

// Server is the local single-user page over the pond.
type Server struct {
	log        *slog.Logger
	pond       contract.IPond
	repository repositories.IMessageRepository
	tmpl       *template.Template
}

func NewServer(log *slog.Logger, pond contract.IPond, repository repositories.IMessageRepository) *Server {
	return &Server{
		log:        log,
		pond:       pond,
		repository: repository,
		tmpl:       template.Must(template.ParseFS(templatesFS, "pond.html")),
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.index)
	mux.HandleFunc("POST /messages", s.postMessage)
	mux.HandleFunc("POST /fly", s.command(domain.ThrowFlyCommand{}))
	mux.HandleFunc("POST /croak", s.command(domain.MakeThemCroakCommand{}))
	mux.HandleFunc("GET /api/pond", s.snapshot)
	mux.HandleFunc("GET /api/messages", s.messages)
	return mux
}

func (s *Server) index(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.Execute(w, s.view()); err != nil {
		s.log.Error("Unable to render pond", "error", err)
	}
}

func (s *Server) postMessage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	form := MessageForm{
		User: strings.TrimSpace(r.PostForm.Get("user")),
		Text: strings.TrimSpace(r.PostForm.Get("text")),
	}
	if err := validate.Struct(form); err != nil {
		s.log.Debug("Message rejected", "error", err)
		http.Error(w, errors.ErrBlankMessage.Error(), http.StatusBadRequest)
		return
	}
	s.pond.Dispatch(domain.PostMessageCommand{Author: form.User, Text: form.Text})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) command(cmd domain.Command) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.pond.Dispatch(cmd)
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

func (s *Server) snapshot(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, s.view())
}

func (s *Server) messages(w http.ResponseWriter, r *http.Request) {
	var cursor *string
	if c := r.URL.Query().Get("cursor"); c != "" {
		cursor = &c
	}
	messages, next, err := s.repository.GetMessages(cursor)
	if err != nil {
		s.log.Error("Unable to read messages", "error", err)
		http.Error(w, "unable to read messages", http.StatusInternalServerError)
		return
	}
	if messages == nil {
		messages = []repositories.DiskMessage{}
	}
	s.writeJSON(w, MessagePage{Messages: messages, NextCursor: next})
}

func (s *Server) view() PondView {
	state := s.pond.Snapshot()
	return PondView{
		Frogs: lo.Map(state.Frogs, func(f domain.Frog, _ int) FrogView {
			return FrogView{ID: f.ID, Mood: f.Mood, Action: f.Action, X: f.Position.X, Y: f.Position.Y, Thought: f.Thought}
		}),
		Messages: lo.Map(state.Messages, func(m domain.Message, _ int) MessageView {
			return MessageView{ID: m.ID.String(), Author: m.Author, Text: m.Text, At: m.CreatedAt}
		}),
		RibbitCount:        state.RibbitCount,
		Threshold:          s.pond.Threshold(),
		ToadfatherSummoned: state.ToadfatherSummoned,
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("Unable to encode response", "error", err)
	}
}

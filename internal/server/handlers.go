// internal/server/handlers.go
package server

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/RNAdvani/kurukshetra/internal/analysis"
)

// Utterance is one speaker-tagged line of a debate transcript.
type Utterance struct {
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
}

// AnalyzeRequest is the transcript analysis input.
type AnalyzeRequest struct {
	Topic         string      `json:"topic"`
	Transcription []Utterance `json:"transcription"`
}

// AnalyzeMessageRequest scores one message against a rolling context.
type AnalyzeMessageRequest struct {
	Topic   string `json:"topic"`
	Message string `json:"message"`
	Context string `json:"context"`
	UserID  string `json:"userId"`
}

// AnalyzeMessageResponse echoes the caller's id alongside the message
// analysis and the updated rolling context.
type AnalyzeMessageResponse struct {
	UserID     string                   `json:"user_id"`
	Analysis   []analysis.MessageAspect `json:"analysis"`
	Facts      analysis.FactsReport     `json:"facts"`
	TotalScore float64                  `json:"total_score"`
	Context    string                   `json:"context"`
}

// DebateRequest asks a persona to answer an argument.
type DebateRequest struct {
	Persona  string `json:"persona"`
	Argument string `json:"argument"`
}

// DebateResponse carries the persona's styled reply.
type DebateResponse struct {
	Persona string   `json:"persona"`
	Reply   string   `json:"reply"`
	History []string `json:"history"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrResp{Error: "invalid JSON: " + err.Error()})
		return
	}

	person1 := joinSpeaker(req.Transcription, "person1")
	person2 := joinSpeaker(req.Transcription, "person2")

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.RequestTimeout())
	defer cancel()

	report, err := s.analyzer.AnalyzeDebate(ctx, req.Topic, person1, person2)
	if err != nil {
		log.Printf("analyze error: %v", err)
		writeJSON(w, statusFor(err), ErrResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleAnalyzeMessage(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeMessageRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrResp{Error: "invalid JSON: " + err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.RequestTimeout())
	defer cancel()

	result, err := s.analyzer.AnalyzeMessage(ctx, req.Topic, req.Message, req.Context)
	if err != nil {
		log.Printf("analyze-message error: %v", err)
		writeJSON(w, statusFor(err), ErrResp{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, AnalyzeMessageResponse{
		UserID:     req.UserID,
		Analysis:   result.Analysis,
		Facts:      result.Facts,
		TotalScore: result.TotalScore,
		Context:    result.Context,
	})
}

func (s *Server) handleDebate(w http.ResponseWriter, r *http.Request) {
	if s.factory == nil {
		writeJSON(w, http.StatusNotImplemented, ErrResp{Error: "debate endpoint is not configured"})
		return
	}

	var req DebateRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	if strings.TrimSpace(req.Persona) == "" || strings.TrimSpace(req.Argument) == "" {
		writeJSON(w, http.StatusBadRequest, ErrResp{Error: "persona and argument are required"})
		return
	}

	debater, err := s.debaterFor(req.Persona)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrResp{Error: err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.RequestTimeout())
	defer cancel()

	reply, err := debater.Respond(ctx, req.Argument)
	if err != nil {
		log.Printf("debate error: %v", err)
		writeJSON(w, http.StatusInternalServerError, ErrResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, DebateResponse{
		Persona: req.Persona,
		Reply:   reply,
		History: debater.History(),
	})
}

func (s *Server) debaterFor(name string) (DebateResponder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d, ok := s.debaters[name]; ok {
		return d, nil
	}
	d, err := s.factory(name)
	if err != nil {
		return nil, err
	}
	s.debaters[name] = d
	return d, nil
}

// joinSpeaker concatenates a speaker's utterances in transcript order,
// wrapped in parentheses to mark it as a single argument block.
func joinSpeaker(transcription []Utterance, speaker string) string {
	var parts []string
	for _, u := range transcription {
		if u.Speaker == speaker && strings.TrimSpace(u.Text) != "" {
			parts = append(parts, u.Text)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return "(" + strings.Join(parts, " ") + ")"
}

package web

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/spigell/talent-scout/internal/candidate"
	"github.com/spigell/talent-scout/internal/export"
	"github.com/spigell/talent-scout/internal/logger"
	"github.com/spigell/talent-scout/internal/questions"
	"github.com/spigell/talent-scout/internal/session"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type pageData struct {
	Form         candidateForm
	Errors       map[string]string
	Profile      *candidate.Profile
	Questions    *questions.Set
	Conversation []session.Message
	Notice       string
	Ended        bool
	AIEnabled    bool
}

type questionsRequest struct {
	TechStack  []string `json:"tech_stack" binding:"required,min=1,max=30,dive,required,max=100"`
	Experience string   `json:"experience" binding:"max=50"`
	Position   string   `json:"position" binding:"max=100"`
	Notes      string   `json:"notes" binding:"max=1000"`
}

func (s *Server) page(state session.State) pageData {
	data := pageData{
		AIEnabled:    s.gen.AIEnabled(),
		Questions:    state.Questions,
		Conversation: state.Recent(),
		Ended:        state.Ended,
	}
	if state.Profile != nil {
		data.Profile = state.Profile.Masked()
	}
	return data
}

func (s *Server) index(c *gin.Context) {
	state, _ := s.currentSession(c)
	c.HTML(http.StatusOK, "index.html", s.page(state))
}

func (s *Server) submitCandidate(c *gin.Context) {
	var form candidateForm
	if err := c.ShouldBind(&form); err != nil {
		data := s.page(session.State{})
		data.Form = form
		data.Errors = validationMessages(err)
		c.HTML(http.StatusBadRequest, "index.html", data)
		return
	}

	state, ok := s.currentSession(c)
	if !ok {
		state = s.store.New()
	}

	profile := form.profile()
	state = session.Submit(c.Request.Context(), s.gen, state, profile)
	s.store.Save(state)
	s.setSessionCookie(c, state.ID)

	s.logger.Info("questions generated",
		zap.String(logger.FieldSession, state.ID),
		zap.Strings("technologies", state.Questions.Technologies()),
		zap.Int("fallbacks", state.Questions.FallbackCount()),
	)

	c.HTML(http.StatusOK, "index.html", s.page(state))
}

func (s *Server) chat(c *gin.Context) {
	state, ok := s.currentSession(c)
	if !ok {
		state = s.store.New()
		s.setSessionCookie(c, state.ID)
	}

	input := c.PostForm("message")
	next, reply := session.Interact(c.Request.Context(), s.gen, state, input)
	s.store.Save(next)

	data := s.page(next)
	if session.ParseAction(input) == session.ActionNone {
		data.Notice = reply
	}
	c.HTML(http.StatusOK, "index.html", data)
}

func (s *Server) exportQuestions(c *gin.Context) {
	state, ok := s.currentSession(c)
	if !ok || state.Questions == nil {
		c.String(http.StatusNotFound, "no questions generated yet")
		return
	}

	buf, err := export.QuestionsXLSX(state.Profile, state.Questions)
	if err != nil {
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, "could not export questions")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="interview-questions.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (s *Server) generateQuestions(c *gin.Context) {
	var req questionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": requestError(err)})
		return
	}

	set := s.gen.Generate(c.Request.Context(), questions.Request{
		TechStack:  req.TechStack,
		Experience: req.Experience,
		Position:   req.Position,
		Notes:      req.Notes,
	})

	c.JSON(http.StatusOK, set)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"ai_enabled": s.gen.AIEnabled(),
	})
}

func requestError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "invalid request body"
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s: failed on %s", fe.Field(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}

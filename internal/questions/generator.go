package questions

import (
	"context"
	"errors"
	"sync"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spigell/talent-scout/internal/ai"
	"github.com/spigell/talent-scout/internal/candidate"
	"github.com/spigell/talent-scout/internal/logger"
	"github.com/spigell/talent-scout/internal/utils"
)

const defaultMaxLogLength = 200

// Request holds the candidate context questions are generated for.
type Request struct {
	TechStack  []string
	Experience string
	Position   string
	Notes      string
}

// RequestFromProfile builds a generation request from a candidate profile.
func RequestFromProfile(p *candidate.Profile) Request {
	if p == nil {
		return Request{}
	}
	return Request{
		TechStack:  append([]string(nil), p.TechStack...),
		Experience: p.Experience,
		Position:   p.Position,
		Notes:      p.Notes,
	}
}

// Options tune a Generator. Zero values select the defaults.
type Options struct {
	// PerTechnology is the number of questions per technology, clamped to 3..5.
	PerTechnology int
	// Workers bounds the number of concurrent AI calls. 1 means sequential.
	Workers int
	// Table overrides the bundled fallback table.
	Table *Table
	// MaxLogLength limits prompt previews in debug logs.
	MaxLogLength int
}

// Generator produces interview questions per technology. It prefers the AI
// completer and falls back to the static table for every technology whose AI
// call is unavailable, fails or returns an unusable answer.
type Generator struct {
	completer ai.Completer
	table     *Table
	perTech   int
	workers   int
	maxLogLen int
	logger    *zap.Logger
}

// NewGenerator creates a Generator. A nil completer means fallback-only operation.
func NewGenerator(completer ai.Completer, log *zap.Logger, opts Options) *Generator {
	perTech := opts.PerTechnology
	switch {
	case perTech == 0:
		perTech = MaxQuestions
	case perTech < MinQuestions:
		perTech = MinQuestions
	case perTech > MaxQuestions:
		perTech = MaxQuestions
	}

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	table := opts.Table
	if table == nil {
		table = DefaultTable()
	}

	maxLogLen := opts.MaxLogLength
	if maxLogLen <= 0 {
		maxLogLen = defaultMaxLogLength
	}

	if log == nil {
		log = zap.NewNop()
	}
	if completer != nil {
		log = logger.WithCommonFields(log, "gemini", completer.Model())
	}

	return &Generator{
		completer: completer,
		table:     table,
		perTech:   perTech,
		workers:   workers,
		maxLogLen: maxLogLen,
		logger:    log,
	}
}

// AIEnabled reports whether an AI completer is configured.
func (g *Generator) AIEnabled() bool {
	return g.completer != nil
}

// Generate returns questions for every distinct technology of the request in
// request order. It never fails: AI problems are logged and recorded in the
// affected entry only.
func (g *Generator) Generate(ctx context.Context, req Request) *Set {
	techs := candidate.Dedupe(req.TechStack)
	entries := make([]Entry, len(techs))

	workers := g.workers
	if g.completer == nil || workers > len(techs) {
		workers = 1
	}

	if workers == 1 {
		for i, tech := range techs {
			entries[i] = g.generateOne(ctx, req, tech)
		}
		return &Set{Items: entries}
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				entries[i] = g.generateOne(ctx, req, techs[i])
			}
		}()
	}

	for i := range techs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return &Set{Items: entries}
}

func (g *Generator) generateOne(ctx context.Context, req Request, tech string) Entry {
	log := logger.WithFields(g.logger, zap.String(logger.FieldTechnology, tech))

	if g.completer == nil {
		return g.fallback(tech, ReasonNoCredential, ErrNoCredential)
	}

	prompt := renderPrompt(tech, req.Experience, req.Position, req.Notes, g.perTech)
	log.Debug("generating questions",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, g.maxLogLen)),
	)

	raw, err := g.completer.GenerateContent(ctx, prompt)
	if err != nil {
		log.Warn("ai generation failed, using fallback questions", zap.Error(err))
		return g.fallback(tech, ReasonAIError, err)
	}

	parsed, err := ParseQuestions(raw)
	if err != nil {
		log.Warn("ai response is unusable, using fallback questions",
			zap.Error(err),
			zap.String("response_preview", utils.TruncateForLog(raw, g.maxLogLen)),
		)
		return g.fallback(tech, ReasonMalformedResponse, err)
	}

	entry := Entry{
		Technology: tech,
		Questions:  limit(parsed, g.perTech),
		Source:     SourceAI,
		Known:      true,
	}
	log.Debug("questions generated", logger.GenerationFields(tech, string(entry.Source))...)
	return entry
}

func (g *Generator) fallback(tech string, reason Reason, err error) Entry {
	list, known := g.table.Lookup(tech)
	if !known {
		list = g.table.Generic(tech)
	}

	if !errors.Is(err, ErrNoCredential) {
		g.logger.Debug("fallback questions selected",
			append(logger.GenerationFields(tech, string(SourceFallback)),
				zap.String("reason", string(reason)),
				zap.Bool("known_technology", known),
			)...,
		)
	}

	return Entry{
		Technology: tech,
		Questions:  limit(list, g.perTech),
		Source:     SourceFallback,
		Reason:     reason,
		Known:      known,
		Err:        err,
	}
}

func limit(list []string, n int) []string {
	if len(list) > n {
		list = list[:n]
	}
	return append([]string(nil), list...)
}

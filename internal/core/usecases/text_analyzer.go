// internal/core/usecases/text_analyzer.go
package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"fraudtect/internal/core/domain"
	"fraudtect/internal/core/ports"
	"fraudtect/internal/lexicon"
	"fraudtect/internal/platform/errors"
	"fraudtect/internal/platform/logx"
	"fraudtect/internal/platform/metrics"
	"fraudtect/internal/platform/validator"
	"fraudtect/internal/scoring"
)

// DefaultMaxInputBytes limita el texto aceptado por análisis.
const DefaultMaxInputBytes = 100_000

// TextAnalyzer combina el motor léxico y el clasificador en un veredicto.
type TextAnalyzer struct {
	predictor     ports.Predictor
	matcher       *lexicon.Matcher
	categories    []lexicon.Category
	history       historyRecorder
	metrics       *metrics.Metrics
	logger        logx.Logger
	maxInputBytes int
	now           func() time.Time
}

// TextAnalyzerOptions configura el TextAnalyzer.
type TextAnalyzerOptions struct {
	Predictor     ports.Predictor // nil = modelo no disponible
	Matcher       *lexicon.Matcher
	Categories    []lexicon.Category
	History       ports.HistorySink
	Metrics       *metrics.Metrics
	Logger        logx.Logger
	MaxInputBytes int
	Now           func() time.Time
}

// NewTextAnalyzer crea una nueva instancia del analizador de texto.
func NewTextAnalyzer(opts TextAnalyzerOptions) *TextAnalyzer {
	if opts.Logger == nil {
		opts.Logger = logx.Nop()
	}
	if opts.Predictor == nil {
		opts.Predictor = unavailablePredictor{}
	}
	if opts.Matcher == nil {
		opts.Matcher = lexicon.NewTextMatcher()
	}
	if opts.Categories == nil {
		opts.Categories = lexicon.Categories()
	}
	if opts.MaxInputBytes <= 0 {
		opts.MaxInputBytes = DefaultMaxInputBytes
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	logger := opts.Logger.With("component", "text-analyzer")
	return &TextAnalyzer{
		predictor:     opts.Predictor,
		matcher:       opts.Matcher,
		categories:    opts.Categories,
		history:       historyRecorder{sink: opts.History, logger: logger},
		metrics:       opts.Metrics,
		logger:        logger,
		maxInputBytes: opts.MaxInputBytes,
		now:           opts.Now,
	}
}

// ModelAvailable reporta si el clasificador está cargado.
func (a *TextAnalyzer) ModelAvailable() bool {
	return a.predictor.Available()
}

// Analyze evalúa text. El único error terminal es domain.ErrMalformedInput;
// un panic interno se recupera y se devuelve como error.
func (a *TextAnalyzer) Analyze(ctx context.Context, text string) (res *domain.TextAnalysis, err error) {
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			res = nil
			err = fmt.Errorf("text analysis aborted: panic: %v", r)
			a.logger.Err(err)
		}
	}()

	if err := a.validate(text); err != nil {
		a.logger.Debug("rejected text input", "bytes", len(text), "error", err.Error())
		return nil, err
	}

	terms := a.matcher.Match(text)
	keywordScore := a.matcher.Score(terms)
	pred := a.predictor.Predict(text)
	rawRisk := scoring.FuseRaw(keywordScore, pred.Probability)
	risk := scoring.Round2(rawRisk)
	confidence := scoring.Confidence(pred.Probability)
	category := lexicon.Categorize(terms, a.categories)
	verdict := scoring.Verdict(rawRisk)

	res = &domain.TextAnalysis{
		ID:              uuid.NewString(),
		InputText:       domain.TruncateRunes(text, domain.MaxResultInputRunes),
		MatchedKeywords: terms,
		KeywordScore:    keywordScore,
		MLPrediction:    pred.Label,
		MLProbability:   pred.Probability,
		ConfidenceScore: confidence,
		ScamCategory:    category,
		RiskScore:       risk,
		Verdict:         verdict,
		Explanation: scoring.Explain(scoring.ExplainInput{
			Terms:        terms,
			KeywordScore: keywordScore,
			Label:        pred.Label,
			Probability:  pred.Probability,
			Confidence:   confidence,
			Category:     category,
			RiskScore:    risk,
		}),
	}

	a.history.record(ctx, newRecord(res.ID, domain.AnalysisText, text, risk, verdict, a.now()))
	a.metrics.ObserveAnalysis(domain.AnalysisText.String(), verdict.String(), time.Since(start))

	a.logger.Info("text analysis completed",
		"id", res.ID,
		"keywords", len(terms),
		"keyword_score", keywordScore,
		"ml_prediction", pred.Label,
		"risk_score", risk,
		"verdict", verdict.String(),
	)
	return res, nil
}

func (a *TextAnalyzer) validate(text string) error {
	if len(text) > a.maxInputBytes {
		return errors.Wrapf(domain.ErrMalformedInput, "text exceeds %d bytes", a.maxInputBytes)
	}
	if !validator.IsText(text, 0) {
		return errors.Wrap(domain.ErrMalformedInput, "text is not valid UTF-8")
	}
	return nil
}

// unavailablePredictor se usa cuando no se inyecta clasificador.
type unavailablePredictor struct{}

func (unavailablePredictor) Predict(string) ports.Prediction {
	return ports.Prediction{Label: domain.LabelModelUnavailable}
}

func (unavailablePredictor) Available() bool { return false }

// Package scheduling движок бронирования: генерация слотов, подбор и ранжирование
// ресурсов, проверка запросов, расчет цены, план работ и анализ истории клиента.
// Все операции синхронные и зависят только от входных данных; движок не делает
// I/O и не хранит состояние между вызовами.
package scheduling

import (
	"time"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
)

// TimeProvider источник текущего времени движка
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider системные часы
type RealTimeProvider struct{}

// Now возвращает time.Now()
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Config параметры движка для одной предметной области
type Config struct {
	Rules   domain.BookingRules
	Matcher CapabilityMatcher
	// Категории, для которых нужен текстовый контекст
	ComplexCategories []string
	History           HistoryThresholds
	// По умолчанию RealTimeProvider
	Clock TimeProvider
}

// Engine движок бронирования одной предметной области.
// После создания не изменяется и безопасен для конкурентного использования.
type Engine struct {
	rules   domain.BookingRules
	matcher CapabilityMatcher
	complex map[string]struct{}
	history HistoryThresholds
	clock   TimeProvider
}

// New проверяет конфигурацию и создает движок
func New(cfg Config) (*Engine, error) {
	if cfg.Matcher == nil {
		return nil, inputError("matcher", "capability matcher is required")
	}
	if err := cfg.Rules.Validate(); err != nil {
		return nil, inputError("rules", err.Error())
	}

	complexSet := make(map[string]struct{}, len(cfg.ComplexCategories))
	for _, c := range cfg.ComplexCategories {
		complexSet[normalize(c)] = struct{}{}
	}

	history := cfg.History
	if history == (HistoryThresholds{}) {
		history = DefaultHistoryThresholds()
	}

	clock := cfg.Clock
	if clock == nil {
		clock = &RealTimeProvider{}
	}

	return &Engine{
		rules:   cfg.Rules,
		matcher: cfg.Matcher,
		complex: complexSet,
		history: history,
		clock:   clock,
	}, nil
}

// Rules возвращает правила движка
func (e *Engine) Rules() domain.BookingRules {
	return e.rules
}

func (e *Engine) isComplex(category string) bool {
	_, ok := e.complex[normalize(category)]
	return ok
}

func (e *Engine) checkCategory(category string) error {
	if normalize(category) == "" {
		return inputError("category", "is required")
	}
	if !e.matcher.HasCategory(category) {
		return inputError("category", "unknown category "+category)
	}
	return nil
}

func checkUrgency(urgency domain.Urgency) error {
	if !urgency.IsValid() {
		return inputError("urgency", "unknown urgency tier "+string(urgency))
	}
	return nil
}

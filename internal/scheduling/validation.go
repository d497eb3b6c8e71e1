package scheduling

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
)

// IssueCode код нарушения
type IssueCode string

const (
	CodeInvalidInterval          IssueCode = "invalid_interval"
	CodeInPast                   IssueCode = "start_in_past"
	CodeInsufficientNotice       IssueCode = "insufficient_notice"
	CodeTooFarAhead              IssueCode = "too_far_in_advance"
	CodeInsideCancellationWindow IssueCode = "inside_cancellation_window"
	CodeContextTooLong           IssueCode = "context_too_long"
	CodeInvalidContact           IssueCode = "invalid_contact"
	CodeNoEmergencyResource      IssueCode = "no_emergency_resource"
	CodeEmergencyNotImminent     IssueCode = "emergency_not_imminent"
	CodePreferredUnavailable     IssueCode = "preferred_resource_unavailable"
	CodeNoVideoRoom              IssueCode = "no_video_room"
	CodeMissingEstimate          IssueCode = "missing_duration_estimate"
	CodeLongSession              IssueCode = "long_session"
	CodeOutsideBusinessHours     IssueCode = "outside_business_hours"
	CodeMissingContext           IssueCode = "missing_context"
)

const (
	minPhoneDigits = 10
	maxPhoneDigits = 15

	emergencyLeadTime      = 4 * time.Hour
	longSessionMinutes     = 8 * 60
	phoneSeparatorsAllowed = "+-() ."
)

// Issue ошибка или предупреждение проверки
type Issue struct {
	Code    IssueCode
	Field   string
	Message string
}

// ValidationResult блокирующие ошибки и предупреждения.
// IsValid истинно тогда и только тогда, когда Errors пуст.
type ValidationResult struct {
	IsValid         bool
	Errors          []Issue
	Warnings        []Issue
	DepositRequired bool
}

func (r *ValidationResult) addError(code IssueCode, field, message string) {
	r.Errors = append(r.Errors, Issue{Code: code, Field: field, Message: message})
}

func (r *ValidationResult) addWarning(code IssueCode, field, message string) {
	r.Warnings = append(r.Warnings, Issue{Code: code, Field: field, Message: message})
}

// HasWarning проверяет наличие предупреждения с кодом
func (r *ValidationResult) HasWarning(code IssueCode) bool {
	return hasCode(r.Warnings, code)
}

// HasError проверяет наличие ошибки с кодом
func (r *ValidationResult) HasError(code IssueCode) bool {
	return hasCode(r.Errors, code)
}

func hasCode(issues []Issue, code IssueCode) bool {
	for _, i := range issues {
		if i.Code == code {
			return true
		}
	}
	return false
}

// ValidateRequest проверяет запрос по правилам, пулам ресурсов и комнат и
// профилю клиента (опционально). Нарушения правил попадают в результат,
// ошибкой возвращаются только структурные дефекты.
//
// rooms == nil - пула комнат нет, удаленный формат не проверяется.
// Пустой не-nil пул проверку не проходит.
func (e *Engine) ValidateRequest(
	req domain.BookingRequest,
	resources []domain.Resource,
	client *domain.Client,
	rooms []domain.Room,
) (ValidationResult, error) {
	req, err := e.normalizeRequest(req)
	if err != nil {
		return ValidationResult{}, err
	}

	result := ValidationResult{DepositRequired: e.rules.DepositRequired}

	e.validateBase(req, &result)
	validateContact(req, &result)
	e.validateEmergency(req, resources, &result)
	e.validatePreferred(req, resources, &result)
	validateRemoteMode(req, rooms, &result)
	validateBilling(req, &result)
	e.validateBusinessHours(req, &result)
	e.validateContext(req, &result)

	result.IsValid = len(result.Errors) == 0
	return result, nil
}

func (e *Engine) normalizeRequest(req domain.BookingRequest) (domain.BookingRequest, error) {
	if req.Start.IsZero() {
		return req, inputError("start", "is required")
	}
	if req.End.IsZero() {
		return req, inputError("end", "is required")
	}
	if err := e.checkCategory(req.Category); err != nil {
		return req, err
	}
	if err := checkUrgency(req.Urgency); err != nil {
		return req, err
	}

	if req.Mode == "" {
		req.Mode = domain.ModeInPerson
	}
	if !req.Mode.IsValid() {
		return req, inputError("mode", "unknown interaction mode "+string(req.Mode))
	}
	if req.BillingMode == "" {
		req.BillingMode = domain.BillingFixed
	}
	if !req.BillingMode.IsValid() {
		return req, inputError("billingMode", "unknown billing mode "+string(req.BillingMode))
	}
	if req.EstimatedDurationMinutes != nil && *req.EstimatedDurationMinutes <= 0 {
		return req, inputError("estimatedDurationMinutes", "must be positive")
	}
	return req, nil
}

// 0. Интервал, окно записи и окно отмены
func (e *Engine) validateBase(req domain.BookingRequest, result *ValidationResult) {
	now := e.clock.Now()

	if !req.Start.Before(req.End) {
		result.addError(CodeInvalidInterval, "end", "end time must be after start time")
	}

	switch {
	case req.Start.Before(now):
		result.addError(CodeInPast, "start", "requested start is in the past")
	case req.Urgency != domain.UrgencyEmergency &&
		req.Start.Before(now.Add(time.Duration(e.rules.AdvanceBookingHours)*time.Hour)):
		result.addError(CodeInsufficientNotice, "start",
			"bookings require at least "+strconv.Itoa(e.rules.AdvanceBookingHours)+" hours notice")
	}

	if e.rules.HasAdvanceBookingLimit() && req.Start.After(now.AddDate(0, 0, e.rules.MaxAdvanceBookingDays)) {
		result.addError(CodeTooFarAhead, "start",
			"bookings can be made at most "+strconv.Itoa(e.rules.MaxAdvanceBookingDays)+" days in advance")
	}

	if !req.Start.Before(now) &&
		req.Start.Before(now.Add(time.Duration(e.rules.CancellationNoticeHours)*time.Hour)) {
		result.addWarning(CodeInsideCancellationWindow, "start",
			"booking starts within the "+strconv.Itoa(e.rules.CancellationNoticeHours)+
				" hour cancellation window and cannot be cancelled free of charge")
	}

	if req.Context != nil && len([]rune(*req.Context)) > domain.MaxContextLength {
		result.addError(CodeContextTooLong, "context",
			"context must be at most "+strconv.Itoa(domain.MaxContextLength)+" characters")
	}
}

// 1. Формат контактного телефона
func validateContact(req domain.BookingRequest, result *ValidationResult) {
	phone := strings.TrimSpace(req.ContactPhone)
	if phone == "" {
		result.addError(CodeInvalidContact, "contactPhone", "contact phone is required")
		return
	}

	digits := 0
	for _, r := range phone {
		switch {
		case unicode.IsDigit(r):
			digits++
		case strings.ContainsRune(phoneSeparatorsAllowed, r):
		default:
			result.addError(CodeInvalidContact, "contactPhone", "contact phone contains invalid characters")
			return
		}
	}

	if digits < minPhoneDigits || digits > maxPhoneDigits {
		result.addError(CodeInvalidContact, "contactPhone",
			"contact phone must contain between 10 and 15 digits")
	}
}

// 2. Экстренная запись возможна только при наличии дежурных ресурсов
func (e *Engine) validateEmergency(req domain.BookingRequest, resources []domain.Resource, result *ValidationResult) {
	if req.Urgency != domain.UrgencyEmergency {
		return
	}

	hasEmergency := false
	for _, r := range resources {
		if r.IsActive && r.AvailableForEmergency {
			hasEmergency = true
			break
		}
	}
	if !hasEmergency {
		result.addError(CodeNoEmergencyResource, "urgency", "no resource is available for emergency bookings")
	}

	if req.Start.After(e.clock.Now().Add(emergencyLeadTime)) {
		result.addWarning(CodeEmergencyNotImminent, "start",
			"emergency bookings are normally scheduled within 4 hours; consider urgent instead")
	}
}

// 3. Предпочтительный ресурс: только предупреждение
func (e *Engine) validatePreferred(req domain.BookingRequest, resources []domain.Resource, result *ValidationResult) {
	if req.PreferredResourceID == nil {
		return
	}

	for _, r := range resources {
		if r.ID != *req.PreferredResourceID {
			continue
		}
		if r.IsActive && e.capable(r, req.Category) {
			return
		}
		break
	}

	result.addWarning(CodePreferredUnavailable, "preferredResourceId",
		"preferred resource is unavailable for this request; an alternative will be assigned")
}

// 4. Удаленный формат требует комнату с видеосвязью
func validateRemoteMode(req domain.BookingRequest, rooms []domain.Room, result *ValidationResult) {
	if !req.Mode.RequiresVideo() || rooms == nil {
		return
	}
	for _, room := range rooms {
		if room.IsActive && room.SupportsVideo {
			return
		}
	}
	result.addError(CodeNoVideoRoom, "mode", "no room supports video for a remote session")
}

// 5. Согласованность тарификации
func validateBilling(req domain.BookingRequest, result *ValidationResult) {
	if req.BillingMode == domain.BillingHourly && req.EstimatedDurationMinutes == nil {
		result.addWarning(CodeMissingEstimate, "estimatedDurationMinutes",
			"hourly billing without a duration estimate; the final cost may differ")
	}
	if req.EstimatedDurationMinutes != nil && *req.EstimatedDurationMinutes > longSessionMinutes {
		result.addWarning(CodeLongSession, "estimatedDurationMinutes",
			"sessions longer than 8 hours should be split into several bookings")
	}
}

// 6. Начало должно попадать в часы работы для выбранной срочности
func (e *Engine) validateBusinessHours(req domain.BookingRequest, result *ValidationResult) {
	day := e.rules.HoursFor(req.Urgency).ForDay(req.Start.Weekday())
	if startsWithinHours(day, req.Start) {
		return
	}

	if req.Urgency == domain.UrgencyEmergency {
		result.addWarning(CodeOutsideBusinessHours, "start",
			"emergency booking outside business hours; after-hours handling applies")
		return
	}
	result.addError(CodeOutsideBusinessHours, "start", "requested start is outside business hours")
}

// 7. Для сложных категорий нужен контекст
func (e *Engine) validateContext(req domain.BookingRequest, result *ValidationResult) {
	if !e.isComplex(req.Category) {
		return
	}
	if req.Context == nil || strings.TrimSpace(*req.Context) == "" {
		result.addWarning(CodeMissingContext, "context",
			"describing the matter in advance helps the resource prepare")
	}
}

func startsWithinHours(day domain.DaySchedule, start time.Time) bool {
	if !day.IsOpen || day.Start.IsZero() || day.End.IsZero() {
		return false
	}
	return !start.Before(day.Start.On(start)) && start.Before(day.End.On(start))
}

package scheduling

import (
	"time"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
)

// ActivityKind тип этапа работ
type ActivityKind string

const (
	ActivityPreparation   ActivityKind = "preparation"
	ActivityCore          ActivityKind = "core"
	ActivityDocumentation ActivityKind = "documentation"
	ActivityFollowUp      ActivityKind = "follow_up"
)

const (
	preparationLead    = 15 * time.Minute
	preparationMinutes = 15
	corePercent        = 80
	followUpDelay      = 30 * time.Minute
	followUpMinutes    = 15
)

// Activity этап работ по бронированию
type Activity struct {
	At              time.Time
	End             time.Time
	Kind            ActivityKind
	Label           string
	DurationMinutes int
	ResourceName    string
}

// GenerateTimeline строит план работ по принятому бронированию:
// подготовка за 15 минут до начала, основная часть на первые 80% времени,
// документация на остаток и follow-up через 30 минут после окончания,
// если он запрошен.
func GenerateTimeline(booking domain.Booking, resource domain.Resource) ([]Activity, error) {
	if err := checkInterval(booking.StartAt, booking.EndAt); err != nil {
		return nil, err
	}

	name := resource.Name
	if name == "" {
		name = booking.ResourceName
	}

	core := booking.DurationMinutes() * corePercent / 100
	coreEnd := booking.StartAt.Add(time.Duration(core) * time.Minute)
	prepStart := booking.StartAt.Add(-preparationLead)

	timeline := []Activity{
		{
			At:              prepStart,
			End:             prepStart.Add(preparationMinutes * time.Minute),
			Kind:            ActivityPreparation,
			Label:           "Preparation",
			DurationMinutes: preparationMinutes,
			ResourceName:    name,
		},
		{
			At:              booking.StartAt,
			End:             coreEnd,
			Kind:            ActivityCore,
			Label:           coreLabel(booking.Category),
			DurationMinutes: core,
			ResourceName:    name,
		},
		{
			// Документация всегда заканчивается ровно в конце бронирования
			At:              coreEnd,
			End:             booking.EndAt,
			Kind:            ActivityDocumentation,
			Label:           "Documentation",
			DurationMinutes: ceilMinutes(booking.EndAt.Sub(coreEnd)),
			ResourceName:    name,
		},
	}

	if booking.FollowUp {
		followUpStart := booking.EndAt.Add(followUpDelay)
		timeline = append(timeline, Activity{
			At:              followUpStart,
			End:             followUpStart.Add(followUpMinutes * time.Minute),
			Kind:            ActivityFollowUp,
			Label:           "Follow-up",
			DurationMinutes: followUpMinutes,
			ResourceName:    name,
		})
	}

	return timeline, nil
}

func ceilMinutes(d time.Duration) int {
	return int((d + time.Minute - 1) / time.Minute)
}

func coreLabel(category string) string {
	if category == "" {
		return "Session"
	}
	return "Session: " + category
}

package get_timeline

import "github.com/m04kA/SMC-BookingEngine/internal/scheduling"

// Request модель запроса плана встречи
type Request struct {
	BookingID int64
}

// Response план активностей по бронированию
type Response struct {
	BookingID  int64
	Activities []scheduling.Activity
}

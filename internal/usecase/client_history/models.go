package client_history

import "github.com/m04kA/SMC-BookingEngine/internal/scheduling"

// Request модель запроса сводки по клиенту
type Request struct {
	TenantID int64
	ClientID int64
}

// Response сводка истории клиента
type Response struct {
	Summary scheduling.HistorySummary
	// ProfileAvailable false, если профиль клиента не получен и траты не учтены
	ProfileAvailable bool
}

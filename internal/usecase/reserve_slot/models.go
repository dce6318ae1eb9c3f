package reserve_slot

import (
	"time"

	"github.com/chemlab-portal/booking-service/pkg/types"
)

// Request модель запроса на бронирование слота
type Request struct {
	UserID int64 // ID студента (из токена аутентификации)
	SlotID int64 // ID слота
}

// Response модель ответа с созданным бронированием
type Response struct {
	BookingID int64            // ID созданного бронирования
	Reference string           // Публичный UUID бронирования
	UserID    int64            // ID студента
	SlotID    int64            // ID слота
	SlotDate  time.Time        // Дата слота
	StartTime types.TimeString // Время начала сессии
	EndTime   types.TimeString // Время окончания сессии
	Status    string           // Статус бронирования
	Window    string           // Какое окно действовало (regular/emergency)
	CreatedAt time.Time        // Время создания
}

package update_slot

// Допустимые действия над слотом
const (
	ActionClose  = "close"
	ActionReopen = "reopen"
)

// UpdateSlotRequest HTTP request model
// Либо действие (close/reopen), либо новые пометки; можно и то и другое
type UpdateSlotRequest struct {
	Action  *string `json:"action,omitempty"`
	Remarks *string `json:"remarks,omitempty"` // пустая строка очищает пометки
}

// IsEmpty возвращает true, если запрос ничего не меняет
func (r *UpdateSlotRequest) IsEmpty() bool {
	return r.Action == nil && r.Remarks == nil
}

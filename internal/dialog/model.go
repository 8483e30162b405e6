package dialog

type State string

const (
	StateIdle State = "idle"

	// Калькулятор стоимости
	StateEstPackage  State = "est_package"
	StateEstSize     State = "est_size"
	StateEstAddons   State = "est_addons"   // тумблеры доп. услуг
	StateEstDistance State = "est_distance" // ввод расстояния (км), текстом
	StateEstDiscount State = "est_discount" // промокод или «пропустить»
	StateEstResult   State = "est_result"

	// Заявка на мероприятие
	StateBookName     State = "book_name"
	StateBookPhone    State = "book_phone"
	StateBookEmail    State = "book_email"
	StateBookType     State = "book_type" // выбор типа кнопками
	StateBookDate     State = "book_date"
	StateBookSlot     State = "book_slot" // свободные слоты на дату
	StateBookGuests   State = "book_guests"
	StateBookLocation State = "book_location"
	StateBookConfirm  State = "book_confirm"
)

type Payload map[string]any

type Item struct {
	ChatID  int64
	State   State
	Payload Payload
}

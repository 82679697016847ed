package ascent

// CellKind is the type of board cell a player can land on.
type CellKind string

const (
	CellStart  CellKind = "start"
	CellAsset  CellKind = "asset"
	CellEvent  CellKind = "event"
	CellTax    CellKind = "tax"
	CellBank   CellKind = "bank"
	CellPrison CellKind = "prison"
)

// BoardSize is the fixed number of cells on the arena board.
const BoardSize = 24

// BoardCell is one cell of the arena board. Asset cells belong to a market
// district whose multiplier scales their share price.
type BoardCell struct {
	ID       int      `json:"id"`
	Kind     CellKind `json:"kind"`
	Name     string   `json:"name"`
	Cost     Money    `json:"cost,omitzero"`
	Tax      Money    `json:"tax,omitzero"`
	District string   `json:"district,omitempty"`
}

// NewBoard builds the standard 24-cell board in the given currency.
// Layout: a start corner, three districts of assets, punctuated by event,
// tax, bank and one prison cell.
func NewBoard(currency string) []BoardCell {
	m := func(v int) Money { return M(v, currency) }
	return []BoardCell{
		{ID: 0, Kind: CellStart, Name: "Старт"},
		{ID: 1, Kind: CellAsset, Name: "Кофейня", Cost: m(4000), District: "food"},
		{ID: 2, Kind: CellEvent, Name: "Событие"},
		{ID: 3, Kind: CellAsset, Name: "Пекарня", Cost: m(5000), District: "food"},
		{ID: 4, Kind: CellTax, Name: "Налоги", Tax: m(1000)},
		{ID: 5, Kind: CellAsset, Name: "Фудтрак", Cost: m(6000), District: "food"},
		{ID: 6, Kind: CellBank, Name: "Банк"},
		{ID: 7, Kind: CellAsset, Name: "Коворкинг", Cost: m(8000), District: "tech"},
		{ID: 8, Kind: CellEvent, Name: "Событие"},
		{ID: 9, Kind: CellAsset, Name: "Студия", Cost: m(9000), District: "tech"},
		{ID: 10, Kind: CellAsset, Name: "Дата-центр", Cost: m(12000), District: "tech"},
		{ID: 11, Kind: CellPrison, Name: "Простой"},
		{ID: 12, Kind: CellAsset, Name: "Автомойка", Cost: m(7000), District: "services"},
		{ID: 13, Kind: CellEvent, Name: "Событие"},
		{ID: 14, Kind: CellAsset, Name: "Салон", Cost: m(8000), District: "services"},
		{ID: 15, Kind: CellTax, Name: "Налоги", Tax: m(1500)},
		{ID: 16, Kind: CellAsset, Name: "Фитнес-клуб", Cost: m(10000), District: "services"},
		{ID: 17, Kind: CellBank, Name: "Банк"},
		{ID: 18, Kind: CellAsset, Name: "Хостел", Cost: m(11000), District: "estate"},
		{ID: 19, Kind: CellEvent, Name: "Событие"},
		{ID: 20, Kind: CellAsset, Name: "Апартаменты", Cost: m(14000), District: "estate"},
		{ID: 21, Kind: CellTax, Name: "Налоги", Tax: m(2000)},
		{ID: 22, Kind: CellAsset, Name: "Бизнес-центр", Cost: m(16000), District: "estate"},
		{ID: 23, Kind: CellEvent, Name: "Событие"},
	}
}

package ascent

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
)

// Fixed economy rates of the arena.
const (
	PurchaseTaxRate = 0.05 // paid on top of an asset's cost
	SaleTaxRate     = 0.13 // withheld from stock sale proceeds
	DepositRate     = 0.05 // interest credited on a bank deposit
	SharePriceShare = 0.1  // a share is 10% of the asset's full cost
	StartBonus      = 500  // granted when crossing the start cell
	prisonSkipTurns = 2
)

// Arena failure modes. A failed action never mutates state.
var (
	ErrNotAsset         = errors.New("cell is not an asset")
	ErrAlreadyOwned     = errors.New("asset already has an owner")
	ErrNotOwner         = errors.New("player does not own this asset")
	ErrNotBank          = errors.New("cell is not a bank")
	ErrInsufficientCash = errors.New("insufficient cash")
	ErrNoShares         = errors.New("not enough shares")
)

// GamePlayer is one participant of the arena economy.
type GamePlayer struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Cash        Money       `json:"cash"`
	Position    int         `json:"position"`
	AssetLevels map[int]int `json:"asset_levels,omitempty"` // cellID -> upgrade level
	Portfolio   map[int]int `json:"portfolio,omitempty"`    // cellID -> shares held
	SkipTurns   int         `json:"skip_turns,omitempty"`
}

// NewGamePlayer creates a player with starting cash.
func NewGamePlayer(id, name string, cash Money) *GamePlayer {
	return &GamePlayer{
		ID:          id,
		Name:        name,
		Cash:        cash,
		AssetLevels: make(map[int]int),
		Portfolio:   make(map[int]int),
	}
}

// UnmarshalJSON restores a player from persisted state. Empty maps are not
// serialized, so they are reallocated here: the reducers write to them
// unconditionally.
func (p *GamePlayer) UnmarshalJSON(data []byte) error {
	type alias GamePlayer
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*p = GamePlayer(a)
	if p.AssetLevels == nil {
		p.AssetLevels = make(map[int]int)
	}
	if p.Portfolio == nil {
		p.Portfolio = make(map[int]int)
	}
	return nil
}

// OwnedAssetCount returns how many assets the player owns outright.
func (p *GamePlayer) OwnedAssetCount() int { return len(p.AssetLevels) }

// GameState is the in-memory simulated economy: a fixed board, a roster of
// players, district market multipliers and a narrative history. All mutators
// are reducers: they either apply fully or leave the state untouched.
type GameState struct {
	Board       []BoardCell        `json:"board"`
	Players     []*GamePlayer      `json:"players"`
	Active      int                `json:"active"`
	OwnedAssets map[int]string     `json:"owned_assets"` // cellID -> playerID, at most one owner
	Multipliers map[string]float64 `json:"multipliers"`  // district -> market multiplier
	History     []string           `json:"history,omitempty"`
	Turn        int                `json:"turn"`

	roll func() int // injected for tests; defaults to a fair d6
}

// NewGame creates a game over the given board. The first player is active.
func NewGame(board []BoardCell, players ...*GamePlayer) *GameState {
	return &GameState{
		Board:       board,
		Players:     players,
		OwnedAssets: make(map[int]string),
		Multipliers: make(map[string]float64),
		roll:        func() int { return 1 + rand.Intn(6) },
	}
}

// SetDice replaces the dice source. Tests use it for determinism.
func (g *GameState) SetDice(roll func() int) { g.roll = roll }

// ActivePlayer returns the player whose turn it is.
func (g *GameState) ActivePlayer() *GamePlayer { return g.Players[g.Active] }

// Multiplier returns the live market multiplier of a district, 1.0 when the
// district has no quote yet.
func (g *GameState) Multiplier(district string) float64 {
	if m, ok := g.Multipliers[district]; ok && m > 0 {
		return m
	}
	return 1.0
}

func (g *GameState) cell(cellID int) (BoardCell, error) {
	if cellID < 0 || cellID >= len(g.Board) {
		return BoardCell{}, fmt.Errorf("cell %d out of board", cellID)
	}
	return g.Board[cellID], nil
}

// SharePrice is the price of one share of an asset cell: 10% of the asset's
// full cost scaled by its district's live multiplier.
func (g *GameState) SharePrice(cellID int) (Money, error) {
	cell, err := g.cell(cellID)
	if err != nil {
		return Money{}, err
	}
	if cell.Kind != CellAsset {
		return Money{}, fmt.Errorf("%w: cell %d is %s", ErrNotAsset, cellID, cell.Kind)
	}
	return cell.Cost.MulF(SharePriceShare * g.Multiplier(cell.District)), nil
}

// MoveResult describes what happened during a dice roll.
type MoveResult struct {
	Rolled       int
	From, To     int
	CrossedStart bool
	Cell         BoardCell
	Note         string
}

// RollDice consumes one move from the profile and advances the active
// player. Crossing start grants a fixed bonus; the landing cell resolves by
// kind (tax debit, bank offer, event, prison). When the profile has no moves
// left the roll fails with ErrNoMoves and nothing changes. A player sitting
// out prison turns spends the move without advancing.
func (g *GameState) RollDice(profile *Profile) (*MoveResult, error) {
	p := g.ActivePlayer()
	if err := profile.SpendMove(); err != nil {
		return nil, err
	}
	g.Turn++

	if p.SkipTurns > 0 {
		p.SkipTurns--
		g.logf("%s пропускает ход (осталось %d)", p.Name, p.SkipTurns)
		return &MoveResult{From: p.Position, To: p.Position, Note: "пропуск хода"}, nil
	}

	rolled := g.roll()
	from := p.Position
	to := (from + rolled) % len(g.Board)
	p.Position = to

	res := &MoveResult{Rolled: rolled, From: from, To: to, Cell: g.Board[to]}
	if to < from || rolled >= len(g.Board) {
		res.CrossedStart = true
		p.Cash = p.Cash.Add(M(StartBonus, p.Cash.Currency()))
		g.logf("%s проходит старт и получает бонус", p.Name)
	}

	switch cell := g.Board[to]; cell.Kind {
	case CellTax:
		// A forced debit, capped at the player's cash.
		due := cell.Tax
		if p.Cash.LessThan(due) {
			due = p.Cash
		}
		p.Cash = p.Cash.Sub(due)
		res.Note = "налог " + due.String()
		g.logf("%s платит налог %s", p.Name, due)
	case CellPrison:
		p.SkipTurns = prisonSkipTurns
		res.Note = "простой"
		g.logf("%s попадает в простой на %d хода", p.Name, prisonSkipTurns)
	case CellEvent:
		res.Note = g.drawEvent(p)
	case CellAsset:
		res.Note = "можно купить: " + cell.Name
	case CellBank:
		res.Note = "банк предлагает вклад"
	}
	return res, nil
}

// drawEvent applies a small random market or cash event.
func (g *GameState) drawEvent(p *GamePlayer) string {
	switch g.roll() % 3 {
	case 0:
		bonus := M(300, p.Cash.Currency())
		p.Cash = p.Cash.Add(bonus)
		g.logf("%s находит подработку: +%s", p.Name, bonus)
		return "подработка +" + bonus.String()
	case 1:
		fine := M(200, p.Cash.Currency())
		if p.Cash.LessThan(fine) {
			fine = p.Cash
		}
		p.Cash = p.Cash.Sub(fine)
		g.logf("%s платит штраф %s", p.Name, fine)
		return "штраф " + fine.String()
	default:
		g.logf("рынок оживает, но ничего не происходит")
		return "тихое событие"
	}
}

// BuyAsset transfers ownership of an unowned asset cell to the acting
// player. The player needs cash for the cost plus the purchase tax and is
// debited exactly cost x (1 + PurchaseTaxRate).
func (g *GameState) BuyAsset(cellID int) error {
	cell, err := g.cell(cellID)
	if err != nil {
		return err
	}
	if cell.Kind != CellAsset {
		return fmt.Errorf("%w: cell %d is %s", ErrNotAsset, cellID, cell.Kind)
	}
	if owner, taken := g.OwnedAssets[cellID]; taken {
		return fmt.Errorf("%w: %s belongs to %s", ErrAlreadyOwned, cell.Name, owner)
	}
	p := g.ActivePlayer()
	price := cell.Cost.MulF(1 + PurchaseTaxRate)
	if p.Cash.LessThan(price) {
		return fmt.Errorf("%w: need %s, have %s", ErrInsufficientCash, price, p.Cash)
	}
	p.Cash = p.Cash.Sub(price)
	g.OwnedAssets[cellID] = p.ID
	p.AssetLevels[cellID] = 1
	g.logf("%s покупает %s за %s", p.Name, cell.Name, price)
	return nil
}

// BuyStock adds shares of an asset cell to the acting player's portfolio.
// Any player may hold shares without owning the asset outright.
func (g *GameState) BuyStock(cellID, shares int) error {
	if shares <= 0 {
		return fmt.Errorf("share count must be positive, got %d", shares)
	}
	price, err := g.SharePrice(cellID)
	if err != nil {
		return err
	}
	p := g.ActivePlayer()
	total := price.MulF(float64(shares))
	if p.Cash.LessThan(total) {
		return fmt.Errorf("%w: need %s, have %s", ErrInsufficientCash, total, p.Cash)
	}
	p.Cash = p.Cash.Sub(total)
	p.Portfolio[cellID] += shares
	g.logf("%s покупает %d акций %s за %s", p.Name, shares, g.Board[cellID].Name, total)
	return nil
}

// SellStock removes shares from the acting player's portfolio and credits
// the proceeds minus the fixed sale tax. A portfolio entry that reaches
// zero is removed.
func (g *GameState) SellStock(cellID, shares int) error {
	if shares <= 0 {
		return fmt.Errorf("share count must be positive, got %d", shares)
	}
	price, err := g.SharePrice(cellID)
	if err != nil {
		return err
	}
	p := g.ActivePlayer()
	if p.Portfolio[cellID] < shares {
		return fmt.Errorf("%w: have %d, selling %d", ErrNoShares, p.Portfolio[cellID], shares)
	}
	proceeds := price.MulF(float64(shares)).MulF(1 - SaleTaxRate)
	p.Portfolio[cellID] -= shares
	if p.Portfolio[cellID] == 0 {
		delete(p.Portfolio, cellID)
	}
	p.Cash = p.Cash.Add(proceeds)
	g.logf("%s продаёт %d акций %s, выручка %s", p.Name, shares, g.Board[cellID].Name, proceeds)
	return nil
}

// UpgradeAsset increments the level of an asset the acting player owns,
// debiting half the asset's base cost.
func (g *GameState) UpgradeAsset(cellID int) error {
	cell, err := g.cell(cellID)
	if err != nil {
		return err
	}
	p := g.ActivePlayer()
	if g.OwnedAssets[cellID] != p.ID {
		return fmt.Errorf("%w: %s", ErrNotOwner, cell.Name)
	}
	price := cell.Cost.MulF(0.5)
	if p.Cash.LessThan(price) {
		return fmt.Errorf("%w: need %s, have %s", ErrInsufficientCash, price, p.Cash)
	}
	p.Cash = p.Cash.Sub(price)
	p.AssetLevels[cellID]++
	g.logf("%s улучшает %s до уровня %d", p.Name, cell.Name, p.AssetLevels[cellID])
	return nil
}

// MakeDeposit places cash in a bank cell; the simplified economy credits
// the fixed interest immediately.
func (g *GameState) MakeDeposit(cellID int, amount Money) error {
	cell, err := g.cell(cellID)
	if err != nil {
		return err
	}
	if cell.Kind != CellBank {
		return fmt.Errorf("%w: cell %d is %s", ErrNotBank, cellID, cell.Kind)
	}
	if !amount.IsPositive() {
		return fmt.Errorf("deposit amount must be positive, got %s", amount)
	}
	p := g.ActivePlayer()
	if p.Cash.LessThan(amount) {
		return fmt.Errorf("%w: need %s, have %s", ErrInsufficientCash, amount, p.Cash)
	}
	interest := amount.MulF(DepositRate)
	p.Cash = p.Cash.Add(interest)
	g.logf("%s кладёт %s в банк, проценты %s", p.Name, amount, interest)
	return nil
}

// ArenaPeer is a remote player's state as last reported by the lobby.
type ArenaPeer struct {
	ID          string
	Name        string
	Cash        float64
	Position    int
	OwnedAssets int
}

// Reconcile merges the lobby's authoritative roster into the game. Remote
// players are upserted from the roster; the local player keeps optimistic
// state until the next successful sync. Players absent from the roster are
// dropped, and so are entries whose position is off the board.
func (g *GameState) Reconcile(roster []ArenaPeer, localID string) {
	currency := ""
	if len(g.Players) > 0 {
		currency = g.Players[0].Cash.Currency()
	}
	byID := make(map[string]*GamePlayer, len(g.Players))
	for _, p := range g.Players {
		byID[p.ID] = p
	}

	merged := make([]*GamePlayer, 0, len(roster))
	seen := make(map[string]bool, len(roster))
	for _, peer := range roster {
		seen[peer.ID] = true
		existing := byID[peer.ID]
		if peer.ID == localID && existing != nil {
			merged = append(merged, existing)
			continue
		}
		// The lobby accepts any JSON; an entry with an impossible position
		// is corrupt and would break board lookups.
		if peer.Position < 0 || peer.Position >= len(g.Board) {
			continue
		}
		if existing == nil {
			existing = NewGamePlayer(peer.ID, peer.Name, M(peer.Cash, currency))
		} else {
			existing.Cash = M(peer.Cash, currency)
		}
		existing.Name = peer.Name
		existing.Position = peer.Position
		merged = append(merged, existing)
	}
	// Keep the local player even if the roster momentarily dropped it.
	if local := byID[localID]; local != nil && !seen[localID] {
		merged = append(merged, local)
	}
	g.Players = merged
	if g.Active >= len(g.Players) {
		g.Active = 0
	}
}

func (g *GameState) logf(format string, args ...any) {
	g.History = append(g.History, fmt.Sprintf(format, args...))
}

package ascent

import (
	"encoding/json"
	"errors"
	"testing"
)

// newTestGame builds a one-player game with scripted dice.
func newTestGame(cash float64, rolls ...int) (*GameState, *GamePlayer) {
	p := NewGamePlayer("p1", "Аня", rub(cash))
	g := NewGame(NewBoard("RUB"), p)
	i := 0
	g.SetDice(func() int {
		r := rolls[i%len(rolls)]
		i++
		return r
	})
	return g, p
}

func TestBuyAsset(t *testing.T) {
	g, p := newTestGame(10000)
	const cellID = 14 // Салон, cost 8000

	// 8000 * 1.05 = 8400 is required and debited exactly.
	if err := g.BuyAsset(cellID); err != nil {
		t.Fatalf("BuyAsset: %v", err)
	}
	if !p.Cash.Equal(rub(1600)) {
		t.Errorf("cash = %s, want 1600", p.Cash)
	}
	if g.OwnedAssets[cellID] != p.ID {
		t.Errorf("owner = %q, want %q", g.OwnedAssets[cellID], p.ID)
	}
	if p.AssetLevels[cellID] != 1 {
		t.Errorf("level = %d, want 1", p.AssetLevels[cellID])
	}
}

func TestBuyAssetInsufficientCash(t *testing.T) {
	g, p := newTestGame(8399) // one short of 8400
	err := g.BuyAsset(14)
	if !errors.Is(err, ErrInsufficientCash) {
		t.Fatalf("err = %v, want ErrInsufficientCash", err)
	}
	if !p.Cash.Equal(rub(8399)) {
		t.Error("failed purchase mutated cash")
	}
	if _, owned := g.OwnedAssets[14]; owned {
		t.Error("failed purchase recorded ownership")
	}
}

func TestBuyAssetPreconditions(t *testing.T) {
	g, _ := newTestGame(100000)
	if err := g.BuyAsset(0); !errors.Is(err, ErrNotAsset) {
		t.Errorf("buying the start cell = %v, want ErrNotAsset", err)
	}
	if err := g.BuyAsset(99); err == nil {
		t.Error("buying a cell off the board succeeded")
	}
	if err := g.BuyAsset(14); err != nil {
		t.Fatal(err)
	}
	if err := g.BuyAsset(14); !errors.Is(err, ErrAlreadyOwned) {
		t.Errorf("double purchase = %v, want ErrAlreadyOwned", err)
	}
}

func TestSharePrice(t *testing.T) {
	g, _ := newTestGame(0)
	const cellID = 14 // cost 8000, district "services"

	price, err := g.SharePrice(cellID)
	if err != nil {
		t.Fatal(err)
	}
	if !price.Equal(rub(800)) { // 8000 * 0.1 * 1.0
		t.Errorf("price = %s, want 800", price)
	}

	g.Multipliers["services"] = 1.2
	price, err = g.SharePrice(cellID)
	if err != nil {
		t.Fatal(err)
	}
	if !price.Equal(rub(960)) { // 8000 * 0.1 * 1.2
		t.Errorf("price with multiplier = %s, want 960", price)
	}

	if _, err := g.SharePrice(0); !errors.Is(err, ErrNotAsset) {
		t.Errorf("share price of start cell = %v, want ErrNotAsset", err)
	}
}

func TestBuyAndSellStock(t *testing.T) {
	g, p := newTestGame(10000)
	const cellID = 14 // share price 800

	if err := g.BuyStock(cellID, 5); err != nil {
		t.Fatalf("BuyStock: %v", err)
	}
	if !p.Cash.Equal(rub(6000)) {
		t.Errorf("cash after buy = %s, want 6000", p.Cash)
	}
	if p.Portfolio[cellID] != 5 {
		t.Errorf("shares = %d, want 5", p.Portfolio[cellID])
	}

	// Selling 5 shares at 800 applies the 13% sale tax: 4000 * 0.87 = 3480.
	if err := g.SellStock(cellID, 5); err != nil {
		t.Fatalf("SellStock: %v", err)
	}
	if !p.Cash.Equal(rub(9480)) {
		t.Errorf("cash after sale = %s, want 9480", p.Cash)
	}
	if _, holds := p.Portfolio[cellID]; holds {
		t.Error("empty portfolio entry was not removed")
	}

	if err := g.SellStock(cellID, 1); !errors.Is(err, ErrNoShares) {
		t.Errorf("selling shares not held = %v, want ErrNoShares", err)
	}
}

func TestRollDiceConsumesMove(t *testing.T) {
	g, p := newTestGame(5000, 3)
	profile := DefaultProfile()
	profile.Moves = 1

	res, err := g.RollDice(profile)
	if err != nil {
		t.Fatalf("RollDice: %v", err)
	}
	if profile.Moves != 0 {
		t.Errorf("moves = %d, want 0", profile.Moves)
	}
	if res.To != 3 || p.Position != 3 {
		t.Errorf("position = %d/%d, want 3", res.To, p.Position)
	}

	// Out of moves: the roll fails and nothing changes.
	if _, err := g.RollDice(profile); !errors.Is(err, ErrNoMoves) {
		t.Fatalf("roll without moves = %v, want ErrNoMoves", err)
	}
	if p.Position != 3 {
		t.Error("failed roll moved the player")
	}
}

func TestRollDiceCrossingStartGrantsBonus(t *testing.T) {
	g, p := newTestGame(1000, 4)
	p.Position = 21 // 21 + 4 wraps to 1
	profile := DefaultProfile()
	profile.Moves = 1

	res, err := g.RollDice(profile)
	if err != nil {
		t.Fatal(err)
	}
	if !res.CrossedStart {
		t.Error("wrap must report crossing start")
	}
	if p.Position != 1 {
		t.Errorf("position = %d, want 1", p.Position)
	}
	// 1000 + 500 start bonus, then cell 1 is an asset (no debit).
	if !p.Cash.Equal(rub(1500)) {
		t.Errorf("cash = %s, want 1500", p.Cash)
	}
}

func TestRollDiceTaxCell(t *testing.T) {
	g, p := newTestGame(5000, 4)
	// From position 0, rolling 4 lands on cell 4 (tax 1000).
	profile := DefaultProfile()
	if _, err := g.RollDice(profile); err != nil {
		t.Fatal(err)
	}
	if !p.Cash.Equal(rub(4000)) {
		t.Errorf("cash = %s, want 4000 after 1000 tax", p.Cash)
	}
}

func TestRollDicePrisonSkipsTurns(t *testing.T) {
	g, p := newTestGame(5000, 5)
	p.Position = 6 // 6 + 5 = 11, the prison cell
	profile := DefaultProfile()
	profile.Moves = 3

	if _, err := g.RollDice(profile); err != nil {
		t.Fatal(err)
	}
	if p.SkipTurns != 2 {
		t.Fatalf("skip turns = %d, want 2", p.SkipTurns)
	}

	// The next two rolls are sat out: moves are spent, position holds.
	for i := 0; i < 2; i++ {
		res, err := g.RollDice(profile)
		if err != nil {
			t.Fatal(err)
		}
		if res.To != 11 {
			t.Errorf("skipped turn moved player to %d", res.To)
		}
	}
	if p.SkipTurns != 0 {
		t.Errorf("skip turns = %d, want 0", p.SkipTurns)
	}
}

func TestUpgradeAsset(t *testing.T) {
	g, p := newTestGame(20000)
	const cellID = 14 // cost 8000
	if err := g.UpgradeAsset(cellID); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("upgrading an unowned asset = %v, want ErrNotOwner", err)
	}
	if err := g.BuyAsset(cellID); err != nil { // -8400 -> 11600
		t.Fatal(err)
	}
	if err := g.UpgradeAsset(cellID); err != nil { // -4000 -> 7600
		t.Fatalf("UpgradeAsset: %v", err)
	}
	if p.AssetLevels[cellID] != 2 {
		t.Errorf("level = %d, want 2", p.AssetLevels[cellID])
	}
	if !p.Cash.Equal(rub(7600)) {
		t.Errorf("cash = %s, want 7600", p.Cash)
	}
}

func TestMakeDeposit(t *testing.T) {
	g, p := newTestGame(10000)
	const bank = 6
	if err := g.MakeDeposit(bank, rub(2000)); err != nil {
		t.Fatalf("MakeDeposit: %v", err)
	}
	// Interest 5% is credited immediately: 10000 + 100.
	if !p.Cash.Equal(rub(10100)) {
		t.Errorf("cash = %s, want 10100", p.Cash)
	}
	if err := g.MakeDeposit(0, rub(100)); !errors.Is(err, ErrNotBank) {
		t.Errorf("deposit on start cell = %v, want ErrNotBank", err)
	}
	if err := g.MakeDeposit(bank, rub(-5)); err == nil {
		t.Error("negative deposit accepted")
	}
	if err := g.MakeDeposit(bank, rub(999999)); !errors.Is(err, ErrInsufficientCash) {
		t.Errorf("oversized deposit = %v, want ErrInsufficientCash", err)
	}
}

func TestReconcile(t *testing.T) {
	local := NewGamePlayer("local", "Я", rub(5000))
	local.Position = 7
	remote := NewGamePlayer("r1", "Борис", rub(3000))
	g := NewGame(NewBoard("RUB"), local, remote)

	// The roster is authoritative for remote players; the local player's
	// optimistic state survives until the next sync.
	g.Reconcile([]ArenaPeer{
		{ID: "local", Name: "Я", Cash: 1, Position: 1},
		{ID: "r2", Name: "Вика", Cash: 2500, Position: 4},
	}, "local")

	if len(g.Players) != 2 {
		t.Fatalf("players = %d, want 2", len(g.Players))
	}
	if !g.Players[0].Cash.Equal(rub(5000)) || g.Players[0].Position != 7 {
		t.Error("local optimistic state was overwritten by the roster")
	}
	if g.Players[1].ID != "r2" || !g.Players[1].Cash.Equal(rub(2500)) {
		t.Errorf("remote player not adopted: %+v", g.Players[1])
	}
	// r1 was absent from the roster and is gone.
	for _, p := range g.Players {
		if p.ID == "r1" {
			t.Error("player absent from roster survived reconcile")
		}
	}
}

func TestGameStateJSONRoundTrip(t *testing.T) {
	g, _ := newTestGame(20000)
	data, err := json.Marshal(g)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	// A fresh player has empty maps that the encoding drops; after decode
	// the reducers must still be able to write to them.
	var loaded GameState
	if err := json.Unmarshal(data, &loaded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	const cellID = 14
	if err := loaded.BuyAsset(cellID); err != nil {
		t.Fatalf("BuyAsset after round trip: %v", err)
	}
	if err := loaded.UpgradeAsset(cellID); err != nil {
		t.Fatalf("UpgradeAsset after round trip: %v", err)
	}
	if err := loaded.BuyStock(cellID, 2); err != nil {
		t.Fatalf("BuyStock after round trip: %v", err)
	}
	p := loaded.ActivePlayer()
	if p.AssetLevels[cellID] != 2 || p.Portfolio[cellID] != 2 {
		t.Errorf("holdings = level %d, %d shares", p.AssetLevels[cellID], p.Portfolio[cellID])
	}
	if !p.Cash.Equal(rub(6000)) { // 20000 - 8400 - 4000 - 1600
		t.Errorf("cash = %s, want 6000", p.Cash)
	}
}

func TestReconcileDropsOffBoardPositions(t *testing.T) {
	local := NewGamePlayer("local", "Я", rub(5000))
	g := NewGame(NewBoard("RUB"), local)

	g.Reconcile([]ArenaPeer{
		{ID: "local", Name: "Я"},
		{ID: "bad", Name: "Чит", Cash: 100, Position: 99},
		{ID: "neg", Name: "Чит", Cash: 100, Position: -1},
		{ID: "ok", Name: "Вика", Cash: 2500, Position: 4},
	}, "local")

	if len(g.Players) != 2 {
		t.Fatalf("players = %d, want local and one valid peer", len(g.Players))
	}
	for _, p := range g.Players {
		if p.Position < 0 || p.Position >= BoardSize {
			t.Errorf("player %s at position %d, off the board", p.ID, p.Position)
		}
	}
}

func TestBoardShape(t *testing.T) {
	board := NewBoard("RUB")
	if len(board) != BoardSize {
		t.Fatalf("board size = %d, want %d", len(board), BoardSize)
	}
	kinds := make(map[CellKind]int)
	for i, cell := range board {
		if cell.ID != i {
			t.Errorf("cell %d has id %d", i, cell.ID)
		}
		kinds[cell.Kind]++
		if cell.Kind == CellAsset && (cell.Cost.IsZero() || cell.District == "") {
			t.Errorf("asset cell %d lacks cost or district", i)
		}
	}
	if kinds[CellStart] != 1 || kinds[CellPrison] != 1 {
		t.Errorf("board has %d start and %d prison cells", kinds[CellStart], kinds[CellPrison])
	}
}

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/go-mclib/menu/pkg/helpers"
	"github.com/go-mclib/menu/pkg/host/memhost"
	"github.com/go-mclib/menu/pkg/item"
	"github.com/go-mclib/menu/pkg/menu"
	"github.com/go-mclib/menu/pkg/tui"
	"github.com/prometheus/client_golang/prometheus"
)

type shop struct {
	r       *menu.Router
	logger  *log.Logger
	balance int
}

var wares = []struct {
	material string
	name     string
	price    int
}{
	{"diamond", "Diamond", 10},
	{"emerald", "Emerald", 6},
	{"golden_apple", "Golden Apple", 4},
	{"ender_pearl", "Ender Pearl", 3},
	{"bread", "Bread", 1},
}

func (s *shop) balanceItem() *item.Snapshot {
	return item.New("gold_ingot").
		SetName("Balance").
		SetLore(fmt.Sprintf("%d coins", s.balance)).
		SetGlowing(false).
		Build()
}

func (s *shop) build(rows int) (*menu.Menu, error) {
	m, err := menu.New(menu.Chest, "Shop", rows)
	if err != nil {
		return nil, err
	}

	border := item.New("gray_stained_glass_pane").SetName(" ").Build()
	if err := m.SetBorders(border, nil); err != nil {
		return nil, err
	}
	corner := item.New("black_stained_glass_pane").SetName(" ").Build()
	if err := m.SetCorners(corner, nil); err != nil {
		return nil, err
	}

	balanceSlot := m.Size() - 5
	if err := m.SetSlot(balanceSlot, s.balanceItem(), nil); err != nil {
		return nil, err
	}

	first := menu.RowWidth + 2
	if m.Rows() < 3 {
		first = 0
	}
	for i, w := range wares {
		slot := first + i
		if slot >= balanceSlot {
			break
		}
		b := item.New(w.material).
			SetName(w.name).
			SetLore(fmt.Sprintf("Price: %d", w.price), "Click to buy")
		if err := m.SetItem(slot, b, s.buy(w.name, w.price, balanceSlot)); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (s *shop) buy(name string, price, balanceSlot int) menu.Action {
	return func(e *menu.ClickEvent) {
		if s.balance < price {
			s.logger.Printf("%s cannot afford %s", e.Viewer.Name(), name)
			return
		}
		s.balance -= price
		s.logger.Printf("%s bought %s for %d", e.Viewer.Name(), name, price)
		if err := e.Menu.SetSlot(balanceSlot, s.balanceItem(), nil); err != nil {
			s.logger.Println("update balance:", err)
		}
	}
}

func main() {
	var f helpers.Flags
	helpers.RegisterFlags(&f)
	flag.Parse()

	reg := prometheus.NewRegistry()
	r, h := helpers.NewRouter(f, reg)
	player := memhost.NewPlayer(f.Player)

	logger := log.New(os.Stdout, "", log.LstdFlags)
	if f.Interactive {
		program, writer := tui.Start(h, player, f.MaxLogLines)
		logger = log.New(writer, "", log.LstdFlags)
		r.Logger = logger

		// logging goes through the program, so it must be running first
		go func() {
			if err := run(r, player, logger, f, reg); err != nil {
				logger.Println(err)
			}
		}()
		if _, err := program.Run(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if err := run(r, player, logger, f, reg); err != nil {
		logger.Fatal(err)
	}
	// without a terminal, click every slot once to exercise the actions
	id, _ := h.OpenWindowOf(player)
	w, _ := h.Window(id)
	for i := range w.Slots {
		h.Click(id, menu.PaneMenu, i)
	}
	h.Close(id)
}

func run(r *menu.Router, player *memhost.Player, logger *log.Logger, f helpers.Flags, reg *prometheus.Registry) error {
	helpers.ServeMetrics(f.MetricsAddr, reg, logger)

	s := &shop{r: r, logger: logger, balance: 25}
	m, err := s.build(f.Rows)
	if err != nil {
		return fmt.Errorf("build shop: %w", err)
	}
	if _, err := m.Show(context.Background(), r, player); err != nil {
		return err
	}
	return nil
}

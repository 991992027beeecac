package main

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/ZygmuntJakub/bridge/internal/config"
	"github.com/ZygmuntJakub/bridge/internal/engine"
	"github.com/ZygmuntJakub/bridge/internal/player"
	"github.com/ZygmuntJakub/bridge/internal/table"
)

// StartSimulation plays cfg.SimulationHands hands with bots in every seat
// and prints a summary.
func StartSimulation(cfg *config.Config, logger *zap.Logger, archive table.Archive) error {
	params := cfg.GameParams()
	params.Roles = [engine.NumSeats]engine.Role{}

	t, err := table.New(table.Options{
		Params:  params,
		Bots:    cfg.Bots(),
		Seed:    cfg.Seed,
		Logger:  logger,
		Archive: archive,
	})
	if err != nil {
		return err
	}

	ctx := context.Background()
	var total engine.Tally
	passedOut := 0
	contracts := map[string]int{}
	for i := 0; i < cfg.SimulationHands; i++ {
		if err := t.StartHand(ctx); err != nil {
			return fmt.Errorf("hand %d: %w", i+1, err)
		}
		snap := t.Snapshot()
		if snap.Result == nil {
			passedOut++
			continue
		}
		contracts[snap.Result.Contract.String()]++
		total.NorthSouth += snap.Tally.NorthSouth
		total.EastWest += snap.Tally.EastWest
	}

	fmt.Printf("Hands played: %d (passed out: %d)\n", t.HandsPlayed(), passedOut)
	bots := cfg.Bots()
	for s, sv := range t.Snapshot().Seats {
		kind := bots[s]
		if kind == "" {
			kind = player.KindPoints
		}
		fmt.Printf("  %-5s %s (%s)\n", engine.Seat(s), sv.Name, kind)
	}
	fmt.Printf("Tricks: %s\n", total)

	names := make([]string, 0, len(contracts))
	for c := range contracts {
		names = append(names, c)
	}
	sort.Slice(names, func(i, j int) bool {
		if contracts[names[i]] != contracts[names[j]] {
			return contracts[names[i]] > contracts[names[j]]
		}
		return names[i] < names[j]
	})
	fmt.Println("Contracts:")
	for _, c := range names {
		fmt.Printf("  %-4s %d\n", c, contracts[c])
	}
	return nil
}

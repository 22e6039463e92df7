package main

import (
	"flag"
	"hash/maphash"
	"math/rand/v2"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-agent/internal/knowledge"
	"github.com/vancomm/minesweeper-agent/internal/mines"
	"github.com/vancomm/minesweeper-agent/internal/player"
)

var log = logrus.New()

var (
	width     = flag.Int("width", 9, "board width")
	height    = flag.Int("height", 9, "board height")
	mineCount = flag.Int("mines", 10, "number of mines")
	games     = flag.Int("games", 100, "number of games to play")
	seed      = flag.Uint64("seed", 0, "random seed (0 picks one)")
	verbose   = flag.Bool("v", false, "debug logging")
)

func main() {
	flag.Parse()

	if *verbose {
		log.SetLevel(logrus.DebugLevel)
		mines.Log.SetLevel(logrus.DebugLevel)
		player.Log.SetLevel(logrus.DebugLevel)
		knowledge.Log.SetLevel(logrus.DebugLevel)
	}
	log.SetFormatter(&logrus.TextFormatter{ForceColors: true})

	s := *seed
	if s == 0 {
		s = new(maphash.Hash).Sum64()
	}
	rnd := rand.New(rand.NewPCG(s, 2*s+1))

	params := mines.GameParams{
		Width:     *width,
		Height:    *height,
		MineCount: *mineCount,
	}
	if err := params.Validate(); err != nil {
		log.Fatal(err)
	}

	log.WithFields(logrus.Fields{
		"params": params.Seed(),
		"games":  *games,
		"seed":   s,
	}).Info("starting batch")

	var won, lost, stalled, totalMoves, totalGuesses int
	for i := range *games {
		game, err := mines.NewGame(params, rnd)
		if err != nil {
			log.Fatal(err)
		}
		p := player.New(game, rnd)
		result := p.Play(0)

		totalMoves += result.Moves
		totalGuesses += result.Guesses
		switch {
		case result.Won:
			won++
		case result.Dead:
			lost++
		default:
			stalled++
		}

		log.WithFields(logrus.Fields{
			"game":    i + 1,
			"won":     result.Won,
			"moves":   result.Moves,
			"guesses": result.Guesses,
		}).Debug("game over")
		log.Debug("\n" + game.PlayerGrid.ToString(params.Width))
	}

	log.WithFields(logrus.Fields{
		"won":     won,
		"lost":    lost,
		"stalled": stalled,
		"moves":   totalMoves,
		"guesses": totalGuesses,
	}).Info("batch finished")
}

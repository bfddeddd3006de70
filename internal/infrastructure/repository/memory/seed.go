package memory

import (
	"time"

	"github.com/rlfpro/rocket-fantasy/internal/domain/event"
	"github.com/rlfpro/rocket-fantasy/internal/domain/league"
	"github.com/rlfpro/rocket-fantasy/internal/domain/player"
	"github.com/rlfpro/rocket-fantasy/internal/domain/stats"
)

const (
	GlobalLeagueID = "global"

	EventIDMajor1 = "rlcs-2026-major-1"
	EventIDMajor2 = "rlcs-2026-major-2"
)

func SeedLeagues() []league.League {
	return []league.League{
		{
			ID:        GlobalLeagueID,
			Name:      "Global League",
			IsGlobal:  true,
			CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}
}

func SeedEvents() []event.Event {
	return []event.Event{
		{
			ID:                 EventIDMajor1,
			Name:               "RLCS 2026 Major 1",
			BallchasingGroupID: "rlcs-2026-major-1-group",
			CreatedAt:          time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:                 EventIDMajor2,
			Name:               "RLCS 2026 Major 2",
			BallchasingGroupID: "rlcs-2026-major-2-group",
			CreatedAt:          time.Date(2026, 6, 21, 0, 0, 0, 0, time.UTC),
		},
	}
}

func SeedPlayers() []player.Player {
	created := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
	mk := func(id, platformID, name string, price int64) player.Player {
		return player.Player{
			ID:         id,
			PlatformID: platformID,
			Name:       name,
			Price:      price,
			CreatedAt:  created,
			UpdatedAt:  created,
		}
	}

	return []player.Player{
		mk("pro-jstn", "epic:a1f2c9d04b3e4f5a", "jstn.", 3350),
		mk("pro-garrettg", "steam:76561198137643520", "GarrettG", 2980),
		mk("pro-squishy", "steam:76561198286759507", "Squishy", 2730),
		mk("pro-firstkiller", "epic:b7e3d1a94c5f6071", "Firstkiller", 3120),
		mk("pro-daniel", "epic:c9d8e7f6a5b40312", "Daniel", 2540),
		mk("pro-vatira", "epic:d4c3b2a190807065", "Vatira.", 3260),
		mk("pro-mmm", "steam:76561198799531878", "M0nkey M00n", 3410),
		mk("pro-zen", "epic:e5f6a7b8c9d00112", "zen", 3580),
		mk("pro-ajack", "epic:f0e1d2c3b4a59687", "ApparentlyJack", 2460),
		mk("pro-rise", "epic:0192a3b4c5d6e7f8", "rise.", 2280),
		mk("pro-atomic", "epic:13579bdf02468ace", "Atomic", 2610),
		mk("pro-beastmode", "steam:76561198083869244", "BeastMode", 2190),
	}
}

func SeedStats() []stats.PlayerEventStats {
	mk := func(playerID, eventID string, goals, assists, saves, shots, demos, score int) stats.PlayerEventStats {
		return stats.PlayerEventStats{
			PlayerID: playerID,
			EventID:  eventID,
			Line: stats.Line{
				Goals:   goals,
				Assists: assists,
				Saves:   saves,
				Shots:   shots,
				Demos:   demos,
				Score:   score,
			},
		}
	}

	return []stats.PlayerEventStats{
		mk("pro-jstn", EventIDMajor1, 31, 18, 42, 89, 9, 7230),
		mk("pro-garrettg", EventIDMajor1, 26, 22, 38, 74, 5, 6540),
		mk("pro-squishy", EventIDMajor1, 22, 19, 47, 66, 4, 6110),
		mk("pro-firstkiller", EventIDMajor1, 29, 14, 35, 95, 11, 6890),
		mk("pro-daniel", EventIDMajor1, 17, 24, 41, 52, 3, 5470),
		mk("pro-vatira", EventIDMajor1, 30, 21, 33, 81, 6, 7010),
		mk("pro-mmm", EventIDMajor1, 28, 26, 44, 77, 4, 7380),
		mk("pro-zen", EventIDMajor1, 35, 17, 39, 92, 7, 7650),
		mk("pro-ajack", EventIDMajor1, 19, 16, 45, 58, 5, 5330),
		mk("pro-rise", EventIDMajor1, 15, 20, 36, 49, 2, 4910),
		mk("pro-atomic", EventIDMajor2, 24, 15, 40, 70, 8, 6020),
		mk("pro-beastmode", EventIDMajor2, 16, 21, 34, 55, 6, 4870),
		mk("pro-zen", EventIDMajor2, 27, 19, 31, 83, 5, 6480),
		mk("pro-vatira", EventIDMajor2, 25, 18, 37, 72, 4, 6210),
	}
}

package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkBreakthrough BookmarkType = "breakthrough"
	BookmarkCollapse     BookmarkType = "collapse"
	BookmarkPlateau      BookmarkType = "plateau"
	BookmarkMastery      BookmarkType = "mastery"
)

// Bookmark marks a generation worth a second look.
type Bookmark struct {
	RunID       string       `csv:"run_id"`
	Type        BookmarkType `csv:"type"`
	Generation  int          `csv:"generation"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"generation", b.Generation,
		"description", b.Description,
	)
}

// BookmarkDetector watches generation summaries for notable shifts.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []GenerationStats
	historySize int
	historyIdx  int
	historyFull bool

	masteryFitness float64
	plateauGens    int

	sinceBest    int  // generations since best-ever last improved
	plateauFired bool // reset by the next new best
	mastered     bool
}

// NewBookmarkDetector creates a detector with the given history size.
// masteryFitness is the best-of-generation fitness, in seconds, that counts
// as mastering the course; plateauGens is how many generations without a new
// best make a plateau.
func NewBookmarkDetector(historySize int, masteryFitness float64, plateauGens int) *BookmarkDetector {
	if historySize < 3 {
		historySize = 3
	}
	return &BookmarkDetector{
		history:        make([]GenerationStats, historySize),
		historySize:    historySize,
		masteryFitness: masteryFitness,
		plateauGens:    plateauGens,
	}
}

// Check analyzes the latest generation and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats GenerationStats) []Bookmark {
	var bookmarks []Bookmark

	if b := bd.checkBreakthrough(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkCollapse(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkPlateau(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkMastery(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	bd.addToHistory(stats)
	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats GenerationStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []GenerationStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

// checkBreakthrough fires when the generation's best more than doubles the
// rolling average best.
func (bd *BookmarkDetector) checkBreakthrough(stats GenerationStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}

	var total float64
	for _, h := range history {
		total += h.Best
	}
	avg := total / float64(len(history))
	if avg == 0 {
		return nil
	}

	if stats.Best > avg*2.0 {
		return &Bookmark{
			RunID:       stats.RunID,
			Type:        BookmarkBreakthrough,
			Generation:  stats.Generation,
			Description: fmt.Sprintf("Best %.2fs is %.1fx average (%.2fs)", stats.Best, stats.Best/avg, avg),
		}
	}
	return nil
}

// checkCollapse fires when mean fitness falls below half its recent peak.
func (bd *BookmarkDetector) checkCollapse(stats GenerationStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}

	var peak float64
	for _, h := range history {
		peak = max(peak, h.Mean)
	}
	if peak == 0 {
		return nil
	}

	if stats.Mean < peak*0.5 {
		return &Bookmark{
			RunID:       stats.RunID,
			Type:        BookmarkCollapse,
			Generation:  stats.Generation,
			Description: fmt.Sprintf("Mean %.2fs fell from recent peak %.2fs", stats.Mean, peak),
		}
	}
	return nil
}

// checkPlateau fires once per stretch of plateauGens generations without a
// new best-ever.
func (bd *BookmarkDetector) checkPlateau(stats GenerationStats) *Bookmark {
	if stats.NewBest {
		bd.sinceBest = 0
		bd.plateauFired = false
		return nil
	}

	bd.sinceBest++
	if bd.plateauGens <= 0 || bd.plateauFired || bd.sinceBest < bd.plateauGens {
		return nil
	}

	bd.plateauFired = true
	return &Bookmark{
		RunID:       stats.RunID,
		Type:        BookmarkPlateau,
		Generation:  stats.Generation,
		Description: fmt.Sprintf("No new best for %d generations (best %.2fs)", bd.sinceBest, stats.BestEver),
	}
}

// checkMastery fires the first time a generation's best reaches masteryFitness.
func (bd *BookmarkDetector) checkMastery(stats GenerationStats) *Bookmark {
	if bd.mastered || bd.masteryFitness <= 0 || stats.Best < bd.masteryFitness {
		return nil
	}

	bd.mastered = true
	return &Bookmark{
		RunID:       stats.RunID,
		Type:        BookmarkMastery,
		Generation:  stats.Generation,
		Description: fmt.Sprintf("Best %.2fs reached mastery threshold %.0fs", stats.Best, bd.masteryFitness),
	}
}

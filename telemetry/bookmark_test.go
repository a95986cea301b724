package telemetry

import "testing"

func hasBookmark(bookmarks []Bookmark, typ BookmarkType) bool {
	for _, bm := range bookmarks {
		if bm.Type == typ {
			return true
		}
	}
	return false
}

func TestBookmarkDetector_Breakthrough(t *testing.T) {
	bd := NewBookmarkDetector(10, 0, 0)

	for i := 0; i < 5; i++ {
		bd.Check(GenerationStats{Generation: i, Best: 2, Mean: 1})
	}

	bookmarks := bd.Check(GenerationStats{Generation: 5, Best: 5, Mean: 1})
	if !hasBookmark(bookmarks, BookmarkBreakthrough) {
		t.Error("expected breakthrough bookmark")
	}
}

func TestBookmarkDetector_NeedsHistory(t *testing.T) {
	bd := NewBookmarkDetector(10, 0, 0)

	bd.Check(GenerationStats{Best: 1, Mean: 1})
	bookmarks := bd.Check(GenerationStats{Generation: 1, Best: 50, Mean: 0.01})
	if len(bookmarks) != 0 {
		t.Errorf("bookmarks with two generations of history: %+v", bookmarks)
	}
}

func TestBookmarkDetector_Collapse(t *testing.T) {
	bd := NewBookmarkDetector(10, 0, 0)

	for i := 0; i < 5; i++ {
		bd.Check(GenerationStats{Generation: i, Best: 4, Mean: 3})
	}

	bookmarks := bd.Check(GenerationStats{Generation: 5, Best: 4, Mean: 1})
	if !hasBookmark(bookmarks, BookmarkCollapse) {
		t.Error("expected collapse bookmark")
	}
}

func TestBookmarkDetector_PlateauFiresOnce(t *testing.T) {
	bd := NewBookmarkDetector(10, 0, 3)

	bd.Check(GenerationStats{Generation: 0, Best: 1, Mean: 1, NewBest: true})

	fired := 0
	for i := 1; i <= 6; i++ {
		if hasBookmark(bd.Check(GenerationStats{Generation: i, Best: 1, Mean: 1}), BookmarkPlateau) {
			fired++
			if i != 3 {
				t.Errorf("plateau fired at generation %d, want 3", i)
			}
		}
	}
	if fired != 1 {
		t.Errorf("plateau fired %d times, want 1", fired)
	}

	// A new best re-arms the detector.
	bd.Check(GenerationStats{Generation: 7, Best: 2, Mean: 1, NewBest: true})
	for i := 8; i <= 10; i++ {
		bookmarks := bd.Check(GenerationStats{Generation: i, Best: 2, Mean: 1})
		if hasBookmark(bookmarks, BookmarkPlateau) != (i == 10) {
			t.Errorf("generation %d: unexpected plateau state", i)
		}
	}
}

func TestBookmarkDetector_Mastery(t *testing.T) {
	bd := NewBookmarkDetector(10, 60, 0)

	if hasBookmark(bd.Check(GenerationStats{Best: 59}), BookmarkMastery) {
		t.Error("mastery fired below threshold")
	}
	if !hasBookmark(bd.Check(GenerationStats{Generation: 1, Best: 60}), BookmarkMastery) {
		t.Error("expected mastery bookmark")
	}
	if hasBookmark(bd.Check(GenerationStats{Generation: 2, Best: 90}), BookmarkMastery) {
		t.Error("mastery fired twice")
	}
}

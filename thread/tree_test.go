package thread

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CrestNiraj12/chirpterm/domain"
)

func post(id string, replies int) domain.Post {
	return domain.Post{ID: id, Author: domain.Author{Username: "u" + id}, RepliesCount: replies}
}

func loadedTree() *Tree {
	tr := NewTree()
	tr.SetRoot(post("T1", 2))
	tr.SetFirstLevelReplies([]domain.Post{post("R1", 1), post("R2", 0)})
	tr.SetNestedReplies("R1", []domain.Post{post("N1", 0)})
	return tr
}

func TestTree_InsertReplyAtRootPrependsAndCounts(t *testing.T) {
	tr := loadedTree()

	require.True(t, tr.InsertReply(post("R3", 0), ""))

	root, ok := tr.Root()
	require.True(t, ok)
	assert.Equal(t, 3, root.RepliesCount)
	replies := tr.Replies()
	require.Len(t, replies, 3)
	assert.Equal(t, "R3", replies[0].ID)
	assert.Equal(t, "T1", replies[0].ThreadID)
}

func TestTree_InsertNestedReplyTouchesOnlyItsParent(t *testing.T) {
	tr := loadedTree()
	tr.SetNestedReplies("R2", []domain.Post{post("N2", 0)})

	require.True(t, tr.InsertReply(post("N3", 0), "R1"))

	nested := tr.Nested("R1")
	require.Len(t, nested, 2)
	assert.Equal(t, "N3", nested[0].ID)
	assert.Equal(t, "R1", nested[0].ParentReplyID)

	r1, _, _ := tr.Find("R1")
	assert.Equal(t, 2, r1.RepliesCount)
	root, _ := tr.Root()
	assert.Equal(t, 2, root.RepliesCount)

	assert.Equal(t, []domain.Post{post("N2", 0)}, tr.Nested("R2"))
	r2, _, _ := tr.Find("R2")
	assert.Equal(t, 0, r2.RepliesCount)
}

func TestTree_InsertCreatesMissingNestedEntry(t *testing.T) {
	tr := loadedTree()
	require.False(t, tr.HasNested("R2"))

	require.True(t, tr.InsertReply(post("N9", 0), "R2"))
	assert.True(t, tr.HasNested("R2"))
	assert.Len(t, tr.Nested("R2"), 1)
}

func TestTree_InsertReplyUnknownParentIsNoop(t *testing.T) {
	tests := []struct {
		name   string
		parent string
		id     string
	}{
		{name: "unknown parent", parent: "missing", id: "X"},
		{name: "nested parent", parent: "N1", id: "X"},
		{name: "duplicate id", parent: "", id: "R1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := loadedTree()
			before := tr.Version()

			assert.False(t, tr.InsertReply(post(tt.id, 0), tt.parent))
			assert.Equal(t, before, tr.Version())
			assert.Equal(t, 4, tr.Len())
		})
	}
}

func TestTree_InsertWithoutRootIsNoop(t *testing.T) {
	tr := NewTree()
	assert.False(t, tr.InsertReply(post("R1", 0), ""))
	assert.Equal(t, 0, tr.Len())
}

func TestTree_SetInteractionRoundTrip(t *testing.T) {
	for _, id := range []string{"T1", "R2", "N1"} {
		t.Run(id, func(t *testing.T) {
			tr := loadedTree()
			orig, _, _ := tr.Find(id)

			require.True(t, tr.SetInteraction(id, domain.Like, true))
			liked, _, _ := tr.Find(id)
			assert.True(t, liked.Liked)
			assert.Equal(t, orig.LikesCount+1, liked.LikesCount)

			require.True(t, tr.SetInteraction(id, domain.Like, false))
			back, _, _ := tr.Find(id)
			assert.False(t, back.Liked)
			assert.Equal(t, orig.LikesCount, back.LikesCount)
		})
	}
}

func TestTree_SetInteractionIsIdempotentAndClamped(t *testing.T) {
	tr := NewTree()
	root := post("T1", 0)
	root.Bookmarked = true // Inconsistent server data: flag set, count zero.
	tr.SetRoot(root)

	require.True(t, tr.SetInteraction("T1", domain.Bookmark, false))
	got, _ := tr.Root()
	assert.Equal(t, 0, got.BookmarksCount)

	v := tr.Version()
	require.True(t, tr.SetInteraction("T1", domain.Bookmark, false))
	assert.Equal(t, v, tr.Version(), "unchanged flag must not mutate")
}

func TestTree_SetInteractionUnknownIDLeavesTreeUnchanged(t *testing.T) {
	tr := loadedTree()
	before := tr.Version()
	root, _ := tr.Root()
	replies := tr.Replies()
	nested := tr.Nested("R1")

	assert.False(t, tr.SetInteraction("nope", domain.Bookmark, true))

	assert.Equal(t, before, tr.Version())
	gotRoot, _ := tr.Root()
	assert.Equal(t, root, gotRoot)
	assert.Equal(t, replies, tr.Replies())
	assert.Equal(t, nested, tr.Nested("R1"))
}

func TestTree_FindReportsLocation(t *testing.T) {
	tr := loadedTree()

	_, loc, ok := tr.Find("T1")
	require.True(t, ok)
	assert.Equal(t, Location{Level: LevelRoot}, loc)

	_, loc, ok = tr.Find("R2")
	require.True(t, ok)
	assert.Equal(t, Location{Level: LevelReply}, loc)

	_, loc, ok = tr.Find("N1")
	require.True(t, ok)
	assert.Equal(t, Location{Level: LevelNested, ParentID: "R1"}, loc)

	_, _, ok = tr.Find("")
	assert.False(t, ok)
}

func TestTree_SetRootSameIDKeepsReplies(t *testing.T) {
	tr := loadedTree()

	updated := post("T1", 5)
	tr.SetRoot(updated)
	assert.Len(t, tr.Replies(), 2)
	assert.True(t, tr.HasNested("R1"))

	tr.SetRoot(post("T2", 0))
	assert.Empty(t, tr.Replies())
	assert.False(t, tr.HasNested("R1"))
}

func TestTree_SetFirstLevelRepliesPrunesOrphans(t *testing.T) {
	tr := loadedTree()

	tr.SetFirstLevelReplies([]domain.Post{post("R2", 0)})
	assert.False(t, tr.HasNested("R1"))
	_, _, ok := tr.Find("N1")
	assert.False(t, ok)
}

func TestTree_SetNestedRepliesRequiresFirstLevelParent(t *testing.T) {
	tr := loadedTree()
	assert.False(t, tr.SetNestedReplies("N1", []domain.Post{post("Z", 0)}))
	assert.False(t, tr.HasNested("N1"))
}

func TestTree_ReadsReturnCopies(t *testing.T) {
	tr := NewTree()
	root := post("T1", 0)
	root.Attachments = []string{"a.png"}
	tr.SetRoot(root)
	tr.SetFirstLevelReplies([]domain.Post{post("R1", 0)})

	replies := tr.Replies()
	replies[0].LikesCount = 99
	got, _ := tr.Root()
	got.Attachments[0] = "changed"

	r1, _, _ := tr.Find("R1")
	assert.Equal(t, 0, r1.LikesCount)
	again, _ := tr.Root()
	assert.Equal(t, "a.png", again.Attachments[0])
}

func TestTree_SubscribeNotifiesUntilUnsubscribed(t *testing.T) {
	tr := NewTree()
	var changes []Change
	unsubscribe := tr.Subscribe(func(c Change) { changes = append(changes, c) })

	tr.SetRoot(post("T1", 0))
	tr.SetFirstLevelReplies([]domain.Post{post("R1", 0)})
	tr.InsertReply(post("N1", 0), "R1")
	tr.SetInteraction("N1", domain.Like, true)
	unsubscribe()
	tr.Clear()

	require.Len(t, changes, 4)
	assert.Equal(t, ChangeRoot, changes[0].Kind)
	assert.Equal(t, ChangeReplies, changes[1].Kind)
	assert.Equal(t, Change{Kind: ChangeInserted, PostID: "N1", ParentID: "R1"}, changes[2])
	assert.Equal(t, Change{Kind: ChangeInteraction, PostID: "N1", ParentID: "R1"}, changes[3])
	assert.Equal(t, uint64(5), tr.Version())
}

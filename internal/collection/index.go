// Package collection groups posts into tag and month buckets and splits
// ordered slug lists into pages.
package collection

import "git.home.luguber.info/inful/postpress/internal/post"

// AllTag is the tag bucket holding every post.
const AllTag = ""

// buckets is an insertion-ordered map of key to slugs.
type buckets struct {
	keys  []string
	slugs map[string][]string
}

func newBuckets() *buckets {
	return &buckets{slugs: make(map[string][]string)}
}

func (b *buckets) add(key, slug string) {
	if _, ok := b.slugs[key]; !ok {
		b.keys = append(b.keys, key)
	}
	b.slugs[key] = append(b.slugs[key], slug)
}

// Index is the tag and month grouping of one build's posts. Bucket contents
// keep the order posts were indexed in.
type Index struct {
	tags   *buckets
	months *buckets
}

// BuildIndex indexes posts in the given order. Every post lands in the
// AllTag bucket, in each of its tag buckets and in its YYYY-MM bucket.
func BuildIndex(posts []*post.Post) *Index {
	idx := &Index{tags: newBuckets(), months: newBuckets()}
	idx.tags.keys = append(idx.tags.keys, AllTag)
	idx.tags.slugs[AllTag] = []string{}

	for _, p := range posts {
		for _, tag := range p.Tags {
			idx.tags.add(tag, p.ID)
		}
		idx.tags.add(AllTag, p.ID)
		idx.months.add(p.Month(), p.ID)
	}
	return idx
}

// TagKeys returns the tag keys in first-seen order, AllTag first.
func (i *Index) TagKeys() []string { return i.tags.keys }

// MonthKeys returns the YYYY-MM keys in first-seen order.
func (i *Index) MonthKeys() []string { return i.months.keys }

// Tag returns the slugs tagged tag.
func (i *Index) Tag(tag string) []string { return i.tags.slugs[tag] }

// Month returns the slugs dated in month (YYYY-MM).
func (i *Index) Month(month string) []string { return i.months.slugs[month] }

// All returns every indexed slug.
func (i *Index) All() []string { return i.tags.slugs[AllTag] }

package assembler

import (
	"sort"

	"github.com/transferdesk/advising-backend/internal/types"
)

// SpliceExtras inserts ad hoc extra content blocks into an in-memory,
// order-ascending section list, anchored on the conclusion section:
//
//   - the first conclusion's display_order becomes the insertion point and
//     every section at or past it shifts up by len(extras), so the packet
//     still ends with its conclusion;
//   - with no conclusion present the extras are appended at max(order)+1
//     and nothing shifts.
//
// Each extra becomes an info_block section titled after its content block,
// with the body copied by value. The returned list is sorted ascending.
// Reflow happens here, before any row is written, so the caller can persist
// the result in one batch.
func SpliceExtras(sections []*types.PacketSection, extras []*types.ContentBlock) []*types.PacketSection {
	if len(extras) == 0 {
		return sections
	}

	insertAt := -1
	for _, s := range sections {
		if s.SectionKind == types.SectionConclusion {
			insertAt = s.DisplayOrder
			break
		}
	}

	if insertAt >= 0 {
		for _, s := range sections {
			if s.DisplayOrder >= insertAt {
				s.DisplayOrder += len(extras)
			}
		}
	} else {
		maxOrder := -1
		for _, s := range sections {
			if s.DisplayOrder > maxOrder {
				maxOrder = s.DisplayOrder
			}
		}
		insertAt = maxOrder + 1
	}

	out := make([]*types.PacketSection, 0, len(sections)+len(extras))
	out = append(out, sections...)
	for i, block := range extras {
		out = append(out, &types.PacketSection{
			Title:        block.Title,
			DisplayOrder: insertAt + i,
			SectionKind:  types.SectionInfoBlock,
			ContentKind:  block.Kind,
			Content:      block.Body,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DisplayOrder < out[j].DisplayOrder
	})
	return out
}

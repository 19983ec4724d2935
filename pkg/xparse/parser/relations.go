package parser

import (
	"github.com/ukaji3/xparse-go/pkg/xparse/grid"
	"github.com/ukaji3/xparse-go/pkg/xparse/models"
)

// SequenceOrder returns the distinct counted sequence numbers in order of first appearance.
func SequenceOrder(records []models.Record) []int {
	seen := make(map[int]struct{})
	var order []int
	for _, rec := range records {
		if _, ok := seen[rec.P]; ok {
			continue
		}
		seen[rec.P] = struct{}{}
		order = append(order, rec.P)
	}
	return order
}

// PartitionIntoBlocks groups records by sequence number. Blocks follow
// SequenceOrder and keep the records' relative order. Grouping is keyed on P,
// so person IDs need not be contiguous.
func PartitionIntoBlocks(records []models.Record) []models.Block {
	members := make(map[int][]int)
	for i, rec := range records {
		members[rec.P] = append(members[rec.P], i)
	}

	order := SequenceOrder(records)
	blocks := make([]models.Block, 0, len(order))
	for _, seq := range order {
		block := make(models.Block, 0, len(members[seq]))
		for _, idx := range members[seq] {
			block = append(block, records[idx])
		}
		blocks = append(blocks, block)
	}
	return blocks
}

// LinkRelations returns copies of blocks with relationship fields set. The
// first record of each block is the principal and is left unlinked; every
// other record points at the principal's ID and takes its own Name as the
// relationship label. The input blocks are not modified.
func LinkRelations(blocks []models.Block) []models.Block {
	linked := make([]models.Block, len(blocks))
	for i, block := range blocks {
		out := make(models.Block, len(block))
		for j, rec := range block {
			if j == 0 {
				rec.RelativeOf = nil
				rec.RelationType = grid.Empty()
			} else {
				principal := block[0].PersonID
				rec.RelativeOf = &principal
				rec.RelationType = rec.Name
			}
			out[j] = rec
		}
		linked[i] = out
	}
	return linked
}

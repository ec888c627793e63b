package services

import (
	"fmt"
	"math"

	"firebreak-route-service/internal/domain"
)

// overlapToleranceMeters is the largest disagreement allowed between the two
// segmentations' total distances. Anything larger means the inputs do not
// describe the same route.
const overlapToleranceMeters = 1.0

// remainderEpsilon guards float drift when deciding whether an interval is
// fully consumed.
const remainderEpsilon = 1e-9

// JoinOverlap merges the two independently-boundaried segmentations into a
// slope-category x vegetation-type distance matrix using a two-pointer
// interval merge: each iteration consumes the shorter of the two current
// remainders and credits that distance to the corresponding cell.
func JoinOverlap(track *domain.TrackAnalysis, vegetation *domain.VegetationAnalysis) (domain.OverlapMatrix, error) {
	if math.Abs(track.TotalDistanceMeters-vegetation.TotalDistanceMeters) > overlapToleranceMeters {
		return nil, fmt.Errorf(
			"join overlap: slope total %.3f m and vegetation total %.3f m disagree: %w",
			track.TotalDistanceMeters, vegetation.TotalDistanceMeters, ErrLengthMismatch,
		)
	}

	matrix := make(domain.OverlapMatrix)

	i, j := 0, 0
	var remSlope, remVeg float64
	if len(track.Segments) > 0 {
		remSlope = track.Segments[0].DistanceMeters
	}
	if len(vegetation.Segments) > 0 {
		remVeg = vegetation.Segments[0].DistanceMeters
	}

	for i < len(track.Segments) && j < len(vegetation.Segments) {
		take := math.Min(remSlope, remVeg)
		if take > 0 {
			matrix.Add(track.Segments[i].Category, vegetation.Segments[j].Type, take)
		}
		remSlope -= take
		remVeg -= take

		if remSlope <= remainderEpsilon {
			i++
			if i < len(track.Segments) {
				remSlope = track.Segments[i].DistanceMeters
			}
		}
		if remVeg <= remainderEpsilon {
			j++
			if j < len(vegetation.Segments) {
				remVeg = vegetation.Segments[j].DistanceMeters
			}
		}
	}

	return matrix, nil
}

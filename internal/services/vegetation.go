package services

import (
	"context"
	"fmt"
	"strings"

	"firebreak-route-service/internal/domain"
	"firebreak-route-service/internal/platform/obs"
	"firebreak-route-service/internal/ports"
	"firebreak-route-service/internal/spatial"
)

// Classification is a vegetation taxonomy assignment with a confidence
// score for how well the raw landcover label maps onto it.
type Classification struct {
	Type       domain.VegetationType
	Confidence float64
}

// landcoverClassifications maps raw provider labels onto the vegetation
// taxonomy. Snow and ice have no clearing-relevant vegetation, so they fall
// back to grassland at low confidence rather than inventing a fifth type.
var landcoverClassifications = map[string]Classification{
	"wood":     {domain.VegetationHeavyforest, 0.9},
	"forest":   {domain.VegetationHeavyforest, 0.9},
	"trees":    {domain.VegetationHeavyforest, 0.9},
	"scrub":    {domain.VegetationMediumscrub, 0.85},
	"shrub":    {domain.VegetationMediumscrub, 0.85},
	"heath":    {domain.VegetationMediumscrub, 0.85},
	"grass":    {domain.VegetationGrassland, 0.9},
	"meadow":   {domain.VegetationGrassland, 0.9},
	"crop":     {domain.VegetationLightshrub, 0.7},
	"farmland": {domain.VegetationLightshrub, 0.7},
	"orchard":  {domain.VegetationLightshrub, 0.7},
	"snow":     {domain.VegetationGrassland, 0.3},
	"ice":      {domain.VegetationGrassland, 0.3},
	"glacier":  {domain.VegetationGrassland, 0.3},
}

// defaultClassification is the low-confidence fallback for labels the table
// does not recognize.
var defaultClassification = Classification{domain.VegetationMediumscrub, 0.4}

// ClassifyLandcover maps a raw landcover label to a vegetation type and
// confidence. Unrecognized labels default to mediumscrub at low confidence.
func ClassifyLandcover(label string) Classification {
	if c, ok := landcoverClassifications[strings.ToLower(strings.TrimSpace(label))]; ok {
		return c
	}
	return defaultClassification
}

type vegetationStep struct {
	start    domain.Coordinate
	end      domain.Coordinate
	distance float64
	class    Classification
	label    string
}

// AnalyzeVegetation resamples the route at 200 m, looks up the landcover
// class for every sample, classifies it into the vegetation taxonomy and
// merges contiguous same-type steps into segments. A step takes the
// classification of its start sample.
func AnalyzeVegetation(
	ctx context.Context,
	points []domain.Coordinate,
	provider ports.LandcoverProvider,
) (_ *domain.VegetationAnalysis, err error) {
	defer obs.Time(ctx, "engine.AnalyzeVegetation")(&err)

	if len(points) < 2 {
		return nil, fmt.Errorf("analyze vegetation: route needs at least 2 points, got %d: %w", len(points), ErrInvalidInput)
	}

	samples, err := Resample(points, VegetationSampleIntervalMeters)
	if err != nil {
		return nil, fmt.Errorf("analyze vegetation: %w", err)
	}

	labels, err := fetchLandcoverClasses(ctx, samples, provider)
	if err != nil {
		return nil, fmt.Errorf("analyze vegetation: fetch landcover: %w", err)
	}

	var confidenceSum float64
	classes := make([]Classification, len(labels))
	for i, label := range labels {
		classes[i] = ClassifyLandcover(label)
		confidenceSum += classes[i].Confidence
	}

	steps := make([]vegetationStep, 0, len(samples))
	for i := 0; i+1 < len(samples); i++ {
		a, b := samples[i], samples[i+1]
		d := spatial.HaversineDistance(a.Lat, a.Lon, b.Lat, b.Lon)
		if d <= 0 {
			continue
		}
		steps = append(steps, vegetationStep{
			start:    a,
			end:      b,
			distance: d,
			class:    classes[i],
			label:    labels[i],
		})
	}
	if len(steps) == 0 {
		return nil, fmt.Errorf("analyze vegetation: route has zero length: %w", ErrInvalidInput)
	}

	analysis := &domain.VegetationAnalysis{
		Segments:               mergeVegetationSteps(steps),
		VegetationDistribution: make(map[domain.VegetationType]float64, len(domain.VegetationTypes)),
		OverallConfidence:      confidenceSum / float64(len(classes)),
	}
	for _, t := range domain.VegetationTypes {
		analysis.VegetationDistribution[t] = 0
	}

	for _, seg := range analysis.Segments {
		analysis.TotalDistanceMeters += seg.DistanceMeters
		analysis.VegetationDistribution[seg.Type] += seg.DistanceMeters
	}

	// Largest cumulative distance wins; walking the fixed enumeration order
	// with a strict comparison breaks ties toward the first-listed type.
	var predominant domain.VegetationType
	best := -1.0
	for _, t := range domain.VegetationTypes {
		if analysis.VegetationDistribution[t] > best {
			best = analysis.VegetationDistribution[t]
			predominant = t
		}
	}
	analysis.PredominantVegetation = predominant

	return analysis, nil
}

// mergeVegetationSteps collapses contiguous same-type steps into segments.
// Merged confidence is the distance-weighted average; the raw landcover
// label of the first constituent step is kept.
func mergeVegetationSteps(steps []vegetationStep) []domain.VegetationSegment {
	segments := make([]domain.VegetationSegment, 0, len(steps))

	cur := domain.VegetationSegment{
		Start:          steps[0].start,
		End:            steps[0].end,
		Path:           []domain.Coordinate{steps[0].start, steps[0].end},
		Type:           steps[0].class.Type,
		Confidence:     steps[0].class.Confidence,
		LandcoverClass: steps[0].label,
		DistanceMeters: steps[0].distance,
	}
	weighted := steps[0].class.Confidence * steps[0].distance

	for _, s := range steps[1:] {
		if s.class.Type == cur.Type {
			cur.End = s.end
			cur.Path = append(cur.Path, s.end)
			cur.DistanceMeters += s.distance
			weighted += s.class.Confidence * s.distance
			cur.Confidence = weighted / cur.DistanceMeters
			continue
		}

		segments = append(segments, cur)
		cur = domain.VegetationSegment{
			Start:          s.start,
			End:            s.end,
			Path:           []domain.Coordinate{s.start, s.end},
			Type:           s.class.Type,
			Confidence:     s.class.Confidence,
			LandcoverClass: s.label,
			DistanceMeters: s.distance,
		}
		weighted = s.class.Confidence * s.distance
	}

	return append(segments, cur)
}

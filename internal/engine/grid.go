package engine

import (
	"math"

	"medguard/internal/models"
	"medguard/internal/registry"
)

// latDims and lonDims are the coordinate dimension names the pipeline's
// NetCDF products use.
var (
	latDims = map[string]bool{"lat": true, "latitude": true}
	lonDims = map[string]bool{"lon": true, "longitude": true}
)

// surface2D collapses a gridded variable to a lat x lon matrix, averaging
// over any remaining dimensions (e.g. time). Cells with no finite
// contribution are NaN.
func surface2D(g gridded) (lats, lons []float64, matrix [][]float64, ok bool) {
	v := g.v
	if len(v.Dims) < 2 {
		return nil, nil, nil, false
	}
	latIdx, lonIdx := -1, -1
	for i, d := range v.Dims {
		if latDims[d] {
			latIdx = i
		}
		if lonDims[d] {
			lonIdx = i
		}
	}
	if latIdx < 0 || lonIdx < 0 {
		if len(v.Dims) != 2 {
			return nil, nil, nil, false
		}
		latIdx, lonIdx = 0, 1
	}

	nLat, nLon := v.Shape[latIdx], v.Shape[lonIdx]
	if nLat == 0 || nLon == 0 {
		return nil, nil, nil, false
	}

	// Row-major strides.
	strides := make([]int, len(v.Shape))
	s := 1
	for i := len(v.Shape) - 1; i >= 0; i-- {
		strides[i] = s
		s *= v.Shape[i]
	}

	sums := make([][]float64, nLat)
	counts := make([][]int, nLat)
	for i := range sums {
		sums[i] = make([]float64, nLon)
		counts[i] = make([]int, nLon)
	}
	for flat, val := range v.Values {
		if math.IsNaN(val) {
			continue
		}
		li := (flat / strides[latIdx]) % nLat
		lo := (flat / strides[lonIdx]) % nLon
		sums[li][lo] += val
		counts[li][lo]++
	}

	matrix = make([][]float64, nLat)
	for i := range matrix {
		matrix[i] = make([]float64, nLon)
		for j := range matrix[i] {
			if counts[i][j] == 0 {
				matrix[i][j] = math.NaN()
			} else {
				matrix[i][j] = sums[i][j] / float64(counts[i][j])
			}
		}
	}

	lats = coordOrIndex(g, v.Dims[latIdx], nLat)
	lons = coordOrIndex(g, v.Dims[lonIdx], nLon)
	return lats, lons, matrix, true
}

func coordOrIndex(g gridded, dim string, n int) []float64 {
	if c, ok := g.coord(dim); ok && len(c) == n {
		return append([]float64(nil), c...)
	}
	idx := make([]float64, n)
	for i := range idx {
		idx[i] = float64(i)
	}
	return idx
}

// coarsenSurface block-means the matrix by factor, trimming the boundary.
// Coordinates are averaged per block. Factor 1 or less is a no-op.
func coarsenSurface(lats, lons []float64, matrix [][]float64, factor int) ([]float64, []float64, [][]float64) {
	if factor <= 1 {
		return lats, lons, matrix
	}
	nLat := len(lats) / factor
	nLon := len(lons) / factor
	if nLat == 0 || nLon == 0 {
		return lats, lons, matrix
	}
	outLats := make([]float64, nLat)
	outLons := make([]float64, nLon)
	for i := 0; i < nLat; i++ {
		outLats[i] = registry.Mean(lats[i*factor : (i+1)*factor])
	}
	for j := 0; j < nLon; j++ {
		outLons[j] = registry.Mean(lons[j*factor : (j+1)*factor])
	}
	out := make([][]float64, nLat)
	for i := range out {
		out[i] = make([]float64, nLon)
		for j := range out[i] {
			var sum float64
			var n int
			for bi := i * factor; bi < (i+1)*factor; bi++ {
				for bj := j * factor; bj < (j+1)*factor; bj++ {
					if v := matrix[bi][bj]; !math.IsNaN(v) {
						sum += v
						n++
					}
				}
			}
			if n == 0 {
				out[i][j] = math.NaN()
			} else {
				out[i][j] = sum / float64(n)
			}
		}
	}
	return outLats, outLons, out
}

// RiskSurface builds the downsampled lat/lon matrix behind the 3D risk plot.
func RiskSurface(reg *registry.Registry, coarsen int) models.Surface {
	return surfaceOf(reg, DatasetRiskIndex, coarsen)
}

func surfaceOf(reg *registry.Registry, name string, coarsen int) models.Surface {
	g, ok := lookupGridded(reg, name)
	if !ok {
		return models.Surface{}
	}
	lats, lons, matrix, ok := surface2D(g)
	if !ok {
		return models.Surface{}
	}
	lats, lons, matrix = coarsenSurface(lats, lons, matrix, coarsen)

	values := make([][]*float64, len(matrix))
	for i, row := range matrix {
		values[i] = make([]*float64, len(row))
		for j, v := range row {
			if !math.IsNaN(v) {
				cell := v
				values[i][j] = &cell
			}
		}
	}
	return models.Surface{Available: true, Lats: lats, Lons: lons, Values: values}
}

// HabitatPoints builds the downsampled habitat-quality point set.
func HabitatPoints(reg *registry.Registry, coarsen int) models.PointSet {
	g, ok := lookupGridded(reg, DatasetHabitat)
	if !ok {
		return models.PointSet{}
	}
	lats, lons, matrix, ok := surface2D(g)
	if !ok {
		return models.PointSet{}
	}
	lats, lons, matrix = coarsenSurface(lats, lons, matrix, coarsen)
	return models.PointSet{Available: true, Points: matrixPoints(lats, lons, matrix, math.Inf(-1))}
}

// ConnectivityHotspots returns the larval connectivity cells above the given
// quantile of the collapsed grid.
func ConnectivityHotspots(reg *registry.Registry, quantile float64) models.PointSet {
	g, ok := lookupGridded(reg, DatasetConnectivity)
	if !ok {
		return models.PointSet{}
	}
	lats, lons, matrix, ok := surface2D(g)
	if !ok {
		return models.PointSet{}
	}
	flat := make([]float64, 0, len(lats)*len(lons))
	for _, row := range matrix {
		flat = append(flat, row...)
	}
	threshold := registry.Quantile(flat, quantile)
	if math.IsNaN(threshold) {
		return models.PointSet{}
	}
	return models.PointSet{
		Available: true,
		Threshold: threshold,
		Points:    matrixPoints(lats, lons, matrix, threshold),
	}
}

// matrixPoints flattens a matrix into points, keeping finite cells strictly
// above min.
func matrixPoints(lats, lons []float64, matrix [][]float64, min float64) []models.GridPoint {
	var pts []models.GridPoint
	for i, row := range matrix {
		for j, v := range row {
			if math.IsNaN(v) || v <= min {
				continue
			}
			pts = append(pts, models.GridPoint{Lat: lats[i], Lon: lons[j], Value: v})
		}
	}
	return pts
}

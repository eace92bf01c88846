package domain

import "strconv"

// cqRegions groups CQ zones into the regions used by the band-opening table.
var cqRegions = map[string][]int{
	"Europe":        {14, 15, 16, 20},
	"Caribbean":     {8},
	"South America": {9, 10, 11, 12, 13},
	"Japan":         {25},
	"Africa":        {33, 34, 35, 36, 37, 38, 39},
	"VK":            {29, 30},
	"YB":            {27, 28},
	"China":         {23, 24},
	"UA9":           {17, 18, 19},
	"Indian":        {22},
	"Middle East":   {21},
	"Thailand":      {26},
	"North America": {1, 2, 3, 4, 5, 6, 7, 40},
	"Oceania":       {31, 32},
}

// regionByZone is the inverse of cqRegions.
var regionByZone = func() map[int]string {
	m := make(map[int]string, 40)
	for region, zones := range cqRegions {
		for _, z := range zones {
			m[z] = region
		}
	}
	return m
}()

// RegionForCQZone returns the table region of a CQ zone ("5" -> "North America").
// Anything that is not a zone number 1-40 returns Unknown.
func RegionForCQZone(zone string) string {
	n, err := strconv.Atoi(zone)
	if err != nil || n < 1 || n > 40 {
		return Unknown
	}
	if r, ok := regionByZone[n]; ok {
		return r
	}
	return Unknown
}

package services

import (
	"log"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/Aadarsh-Mane/common-backend/config/db"
	"github.com/Aadarsh-Mane/common-backend/models"
	"github.com/Aadarsh-Mane/common-backend/util"
)

// ExtractSymptomName strips the free-text annotation a doctor appends
// after the first " - " separator. Already-bare names pass through
// unchanged, so extraction is idempotent.
func ExtractSymptomName(raw string) string {
	parts := strings.SplitN(raw, " - ", 2)
	return strings.TrimSpace(parts[0])
}

// ExtractSymptomDate pulls the YYYY-MM-DD stamp from the annotation
// part of a recorded symptom, or "" when none is present.
func ExtractSymptomDate(raw string) string {
	parts := strings.SplitN(raw, " - ", 2)
	if len(parts) < 2 {
		return ""
	}
	token := strings.Fields(parts[1])
	if len(token) == 0 {
		return ""
	}
	if _, err := time.Parse("2006-01-02", token[0]); err != nil {
		return ""
	}
	return token[0]
}

// symptomOccurrence is one recorded symptom joined with the patient's
// demographics, flattened from current stays and archived history.
type symptomOccurrence struct {
	Name    string
	Raw     string
	Gender  string
	Age     int
	City    string
	State   string
	Country string
}

func collectOccurrences(patients []models.Patient, histories []models.PatientHistory) []symptomOccurrence {
	var out []symptomOccurrence
	for _, p := range patients {
		for _, rec := range p.AdmissionRecords {
			for _, raw := range rec.SymptomsByDoctor {
				out = append(out, symptomOccurrence{
					Name:    ExtractSymptomName(raw),
					Raw:     raw,
					Gender:  p.Gender,
					Age:     p.Age,
					City:    p.City,
					State:   p.State,
					Country: p.Country,
				})
			}
		}
	}
	for _, h := range histories {
		for _, entry := range h.History {
			for _, raw := range entry.SymptomsByDoctor {
				out = append(out, symptomOccurrence{
					Name:    ExtractSymptomName(raw),
					Raw:     raw,
					Gender:  h.Gender,
					Age:     h.Age,
					City:    h.City,
					State:   h.State,
					Country: h.Country,
				})
			}
		}
	}
	return out
}

// SymptomStat is one symptom with its occurrence count.
type SymptomStat struct {
	Symptom string `json:"symptom"`
	Count   int    `json:"count"`
}

// sortedStats flattens a count map into stats ordered by count desc,
// name asc for equal counts.
func sortedStats(counts map[string]int) []SymptomStat {
	stats := make([]SymptomStat, 0, len(counts))
	for name, count := range counts {
		stats = append(stats, SymptomStat{Symptom: name, Count: count})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return stats[i].Symptom < stats[j].Symptom
	})
	return stats
}

func topN(stats []SymptomStat, n int) []SymptomStat {
	if len(stats) > n {
		return stats[:n]
	}
	return stats
}

// FrequencyReport summarizes how often each symptom appears across the
// whole store. TotalPatients counts current patients only; archived
// stays contribute symptom records but not the patient count.
type FrequencyReport struct {
	TotalPatients       int           `json:"totalPatients"`
	TotalSymptomRecords int           `json:"totalSymptomRecords"`
	MostUsedSymptoms    []SymptomStat `json:"mostUsedSymptoms"`
	UniqueSymptoms      []string      `json:"uniqueSymptoms"`
	AllSymptoms         []SymptomStat `json:"allSymptoms"`
}

func ComputeSymptomFrequency(patients []models.Patient, histories []models.PatientHistory) FrequencyReport {
	occurrences := collectOccurrences(patients, histories)
	counts := map[string]int{}
	for _, o := range occurrences {
		if o.Name != "" {
			counts[o.Name]++
		}
	}
	all := sortedStats(counts)
	var unique []string
	for _, s := range all {
		if s.Count == 1 {
			unique = append(unique, s.Symptom)
		}
	}
	return FrequencyReport{
		TotalPatients:       len(patients),
		TotalSymptomRecords: len(occurrences),
		MostUsedSymptoms:    topN(all, 10),
		UniqueSymptoms:      unique,
		AllSymptoms:         all,
	}
}

// PairStat is one co-occurring symptom pair with its count. The pair
// key is the two names sorted alphabetically, joined by "---".
type PairStat struct {
	Pair  string `json:"pair"`
	Count int    `json:"count"`
}

// ComputeCoOccurringSymptoms counts unordered symptom pairs within each
// stay that recorded at least two symptoms, top 20.
func ComputeCoOccurringSymptoms(patients []models.Patient, histories []models.PatientHistory) []PairStat {
	counts := map[string]int{}
	tally := func(raws []string) {
		if len(raws) < 2 {
			return
		}
		names := make([]string, 0, len(raws))
		for _, raw := range raws {
			if n := ExtractSymptomName(raw); n != "" {
				names = append(names, n)
			}
		}
		for i := 0; i < len(names); i++ {
			for j := i + 1; j < len(names); j++ {
				a, b := names[i], names[j]
				if a > b {
					a, b = b, a
				}
				counts[a+"---"+b]++
			}
		}
	}
	for _, p := range patients {
		for _, rec := range p.AdmissionRecords {
			tally(rec.SymptomsByDoctor)
		}
	}
	for _, h := range histories {
		for _, entry := range h.History {
			tally(entry.SymptomsByDoctor)
		}
	}

	pairs := make([]PairStat, 0, len(counts))
	for pair, count := range counts {
		pairs = append(pairs, PairStat{Pair: pair, Count: count})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Count != pairs[j].Count {
			return pairs[i].Count > pairs[j].Count
		}
		return pairs[i].Pair < pairs[j].Pair
	})
	if len(pairs) > 20 {
		pairs = pairs[:20]
	}
	return pairs
}

// TrendPoint is the symptom mix recorded on one calendar date.
type TrendPoint struct {
	Date     string        `json:"date"`
	Symptoms []SymptomStat `json:"symptoms"`
	Total    int           `json:"total"`
}

// ComputeSymptomTrends buckets dated symptom records per calendar day,
// ascending. Records without a parseable date stamp are skipped.
func ComputeSymptomTrends(patients []models.Patient, histories []models.PatientHistory) []TrendPoint {
	byDate := map[string]map[string]int{}
	for _, o := range collectOccurrences(patients, histories) {
		date := ExtractSymptomDate(o.Raw)
		if date == "" || o.Name == "" {
			continue
		}
		if byDate[date] == nil {
			byDate[date] = map[string]int{}
		}
		byDate[date][o.Name]++
	}

	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	points := make([]TrendPoint, 0, len(dates))
	for _, d := range dates {
		stats := sortedStats(byDate[d])
		total := 0
		for _, s := range stats {
			total += s.Count
		}
		points = append(points, TrendPoint{Date: d, Symptoms: stats, Total: total})
	}
	return points
}

// SeasonalMonth is the top symptom mix of one calendar month.
type SeasonalMonth struct {
	Month             int           `json:"month"`
	MonthName         string        `json:"monthName"`
	TopSymptoms       []SymptomStat `json:"topSymptoms"`
	TotalSymptomCount int           `json:"totalSymptomCount"`
}

// ComputeSeasonalSymptoms aggregates dated records into the twelve
// calendar months, top five symptoms each.
func ComputeSeasonalSymptoms(patients []models.Patient, histories []models.PatientHistory) []SeasonalMonth {
	byMonth := map[int]map[string]int{}
	for _, o := range collectOccurrences(patients, histories) {
		date := ExtractSymptomDate(o.Raw)
		if date == "" || o.Name == "" {
			continue
		}
		t, err := time.Parse("2006-01-02", date)
		if err != nil {
			continue
		}
		m := int(t.Month())
		if byMonth[m] == nil {
			byMonth[m] = map[string]int{}
		}
		byMonth[m][o.Name]++
	}

	months := make([]SeasonalMonth, 0, 12)
	for m := 1; m <= 12; m++ {
		stats := sortedStats(byMonth[m])
		total := 0
		for _, s := range stats {
			total += s.Count
		}
		months = append(months, SeasonalMonth{
			Month:             m,
			MonthName:         time.Month(m).String(),
			TopSymptoms:       topN(stats, 5),
			TotalSymptomCount: total,
		})
	}
	return months
}

// GroupStats is the symptom mix of one demographic bucket.
type GroupStats struct {
	Symptoms   []SymptomStat `json:"symptoms"`
	TotalCount int           `json:"totalCount"`
}

// DemographicsReport breaks symptoms down by gender and age band.
type DemographicsReport struct {
	ByGender   map[string]GroupStats `json:"byGender"`
	ByAgeGroup map[string]GroupStats `json:"byAgeGroup"`
}

// AgeBand maps an age to its reporting band.
func AgeBand(age int) string {
	switch {
	case age < 18:
		return "Under 18"
	case age <= 30:
		return "18-30"
	case age <= 45:
		return "31-45"
	case age <= 60:
		return "46-60"
	default:
		return "Over 60"
	}
}

// NormalizeGender folds anything outside Male/Female into Other.
func NormalizeGender(gender string) string {
	if gender == "Male" || gender == "Female" {
		return gender
	}
	return "Other"
}

func ComputeSymptomDemographics(patients []models.Patient, histories []models.PatientHistory) DemographicsReport {
	byGender := map[string]map[string]int{}
	byAge := map[string]map[string]int{}
	for _, o := range collectOccurrences(patients, histories) {
		if o.Name == "" {
			continue
		}
		g := NormalizeGender(o.Gender)
		if byGender[g] == nil {
			byGender[g] = map[string]int{}
		}
		byGender[g][o.Name]++

		band := AgeBand(o.Age)
		if byAge[band] == nil {
			byAge[band] = map[string]int{}
		}
		byAge[band][o.Name]++
	}

	report := DemographicsReport{
		ByGender:   map[string]GroupStats{},
		ByAgeGroup: map[string]GroupStats{},
	}
	for g, counts := range byGender {
		report.ByGender[g] = toGroupStats(counts)
	}
	for band, counts := range byAge {
		report.ByAgeGroup[band] = toGroupStats(counts)
	}
	return report
}

func toGroupStats(counts map[string]int) GroupStats {
	stats := sortedStats(counts)
	total := 0
	for _, s := range stats {
		total += s.Count
	}
	return GroupStats{Symptoms: stats, TotalCount: total}
}

// LocationReport breaks symptoms down by city, state and country.
// Missing fields fall back to "Unknown"; patients with no location at
// all are skipped.
type LocationReport struct {
	ByCity    map[string]GroupStats `json:"byCity"`
	ByState   map[string]GroupStats `json:"byState"`
	ByCountry map[string]GroupStats `json:"byCountry"`
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

func ComputeSymptomsByLocation(patients []models.Patient, histories []models.PatientHistory) LocationReport {
	byCity := map[string]map[string]int{}
	byState := map[string]map[string]int{}
	byCountry := map[string]map[string]int{}
	for _, o := range collectOccurrences(patients, histories) {
		if o.Name == "" {
			continue
		}
		if o.City == "" && o.State == "" && o.Country == "" {
			continue
		}
		bump := func(m map[string]map[string]int, key string) {
			if m[key] == nil {
				m[key] = map[string]int{}
			}
			m[key][o.Name]++
		}
		bump(byCity, orUnknown(o.City))
		bump(byState, orUnknown(o.State))
		bump(byCountry, orUnknown(o.Country))
	}

	report := LocationReport{
		ByCity:    map[string]GroupStats{},
		ByState:   map[string]GroupStats{},
		ByCountry: map[string]GroupStats{},
	}
	for k, counts := range byCity {
		g := toGroupStats(counts)
		g.Symptoms = topN(g.Symptoms, 10)
		report.ByCity[k] = g
	}
	for k, counts := range byState {
		g := toGroupStats(counts)
		g.Symptoms = topN(g.Symptoms, 10)
		report.ByState[k] = g
	}
	for k, counts := range byCountry {
		g := toGroupStats(counts)
		g.Symptoms = topN(g.Symptoms, 10)
		report.ByCountry[k] = g
	}
	return report
}

// SymptomShare is one symptom's share of a location's recent
// admissions.
type SymptomShare struct {
	Symptom    string  `json:"symptom"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// OutbreakAlert flags a location whose recent admissions cluster
// around the same symptoms.
type OutbreakAlert struct {
	Location                  string         `json:"location"`
	TotalPatients             int            `json:"totalPatients"`
	RecentAdmissionCount      int            `json:"recentAdmissionCount"`
	RecentAdmissionPercentage float64        `json:"recentAdmissionPercentage"`
	DominantSymptoms          []SymptomShare `json:"dominantSymptoms"`
	AlertLevel                string         `json:"alertLevel"`
}

// OutbreakReport is the full sweep result.
type OutbreakReport struct {
	OutbreakAlerts []OutbreakAlert `json:"outbreakAlerts"`
	AlertCount     int             `json:"alertCount"`
	LastUpdated    time.Time       `json:"lastUpdated"`
}

// Outbreak thresholds: a symptom dominates at 40% of recent
// admissions; a location alerts at 30% recent share, High at 60%.
const (
	outbreakWindow            = 30 * 24 * time.Hour
	outbreakMinRecent         = 3
	dominantSymptomPercentage = 40.0
	alertRecentPercentage     = 30.0
	highAlertPercentage       = 60.0
)

/*
* Only current patients participate; archived stays are history, not an
* active cluster
* Group by the full city/state/country key, skipping patients missing
* any of the three
* A location needs at least three admissions inside the trailing window
* Dominant symptoms are those on 40%+ of the recent admissions; an
* alert fires when one exists and recent admissions reach 30% of the
* location's patient count, High at 60%
 */
func ComputeOutbreakReport(patients []models.Patient, now time.Time) OutbreakReport {
	type locationGroup struct {
		total   int
		recent  int
		symptom map[string]int
	}
	cutoff := now.Add(-outbreakWindow)
	groups := map[string]*locationGroup{}

	for _, p := range patients {
		if p.City == "" || p.State == "" || p.Country == "" {
			continue
		}
		key := p.City + ", " + p.State + ", " + p.Country
		g := groups[key]
		if g == nil {
			g = &locationGroup{symptom: map[string]int{}}
			groups[key] = g
		}
		g.total++

		// Recency is counted per admission record, not per patient: a
		// readmitted patient contributes each recent stay.
		for _, rec := range p.AdmissionRecords {
			if !rec.AdmissionDate.After(cutoff) {
				continue
			}
			g.recent++
			for _, raw := range rec.SymptomsByDoctor {
				if n := ExtractSymptomName(raw); n != "" {
					g.symptom[n]++
				}
			}
		}
	}

	var alerts []OutbreakAlert
	for key, g := range groups {
		if g.recent < outbreakMinRecent {
			continue
		}
		recentPct := float64(g.recent) / float64(g.total) * 100

		var dominant []SymptomShare
		for name, count := range g.symptom {
			pct := float64(count) / float64(g.recent) * 100
			if pct >= dominantSymptomPercentage {
				dominant = append(dominant, SymptomShare{Symptom: name, Count: count, Percentage: pct})
			}
		}
		sort.Slice(dominant, func(i, j int) bool {
			if dominant[i].Count != dominant[j].Count {
				return dominant[i].Count > dominant[j].Count
			}
			return dominant[i].Symptom < dominant[j].Symptom
		})

		if len(dominant) == 0 || recentPct < alertRecentPercentage {
			continue
		}
		level := "Medium"
		if recentPct >= highAlertPercentage {
			level = "High"
		}
		alerts = append(alerts, OutbreakAlert{
			Location:                  key,
			TotalPatients:             g.total,
			RecentAdmissionCount:      g.recent,
			RecentAdmissionPercentage: recentPct,
			DominantSymptoms:          dominant,
			AlertLevel:                level,
		})
	}

	sort.Slice(alerts, func(i, j int) bool {
		if alerts[i].AlertLevel != alerts[j].AlertLevel {
			return alerts[i].AlertLevel == "High"
		}
		if alerts[i].RecentAdmissionPercentage != alerts[j].RecentAdmissionPercentage {
			return alerts[i].RecentAdmissionPercentage > alerts[j].RecentAdmissionPercentage
		}
		return alerts[i].Location < alerts[j].Location
	})

	return OutbreakReport{
		OutbreakAlerts: alerts,
		AlertCount:     len(alerts),
		LastUpdated:    now,
	}
}

// loadAnalyticsData fetches the two stores the analytics run over.
func loadAnalyticsData(c *gin.Context) ([]models.Patient, []models.PatientHistory, error) {
	var patients []models.Patient
	if err := db.FindAll(c, db.OpenCollection(util.PatientCollection), bson.M{}, nil, &patients); err != nil {
		log.Println("Error from FindAll patients for analytics:", err)
		return nil, nil, err
	}
	var histories []models.PatientHistory
	if err := db.FindAll(c, db.OpenCollection(util.PatientHistoryCollection), bson.M{}, nil, &histories); err != nil {
		log.Println("Error from FindAll histories for analytics:", err)
		return nil, nil, err
	}
	return patients, histories, nil
}

func GetSymptomAnalytics(c *gin.Context) (FrequencyReport, error) {
	patients, histories, err := loadAnalyticsData(c)
	if err != nil {
		return FrequencyReport{}, err
	}
	return ComputeSymptomFrequency(patients, histories), nil
}

func GetCoOccurringSymptoms(c *gin.Context) ([]PairStat, error) {
	patients, histories, err := loadAnalyticsData(c)
	if err != nil {
		return nil, err
	}
	return ComputeCoOccurringSymptoms(patients, histories), nil
}

func GetSymptomTrends(c *gin.Context) ([]TrendPoint, error) {
	patients, histories, err := loadAnalyticsData(c)
	if err != nil {
		return nil, err
	}
	return ComputeSymptomTrends(patients, histories), nil
}

func GetSeasonalSymptoms(c *gin.Context) ([]SeasonalMonth, error) {
	patients, histories, err := loadAnalyticsData(c)
	if err != nil {
		return nil, err
	}
	return ComputeSeasonalSymptoms(patients, histories), nil
}

func GetSymptomDemographics(c *gin.Context) (DemographicsReport, error) {
	patients, histories, err := loadAnalyticsData(c)
	if err != nil {
		return DemographicsReport{}, err
	}
	return ComputeSymptomDemographics(patients, histories), nil
}

func GetSymptomsByLocation(c *gin.Context) (LocationReport, error) {
	patients, histories, err := loadAnalyticsData(c)
	if err != nil {
		return LocationReport{}, err
	}
	return ComputeSymptomsByLocation(patients, histories), nil
}

func GetOutbreakDetection(c *gin.Context) (OutbreakReport, error) {
	var patients []models.Patient
	if err := db.FindAll(c, db.OpenCollection(util.PatientCollection), bson.M{}, nil, &patients); err != nil {
		log.Println("Error from FindAll patients for outbreak:", err)
		return OutbreakReport{}, err
	}
	return ComputeOutbreakReport(patients, time.Now()), nil
}

package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aadarsh-Mane/common-backend/models"
)

func patientWithSymptoms(city, state, country, gender string, age int, admitted time.Time, symptoms ...string) models.Patient {
	return models.Patient{
		Gender:  gender,
		Age:     age,
		City:    city,
		State:   state,
		Country: country,
		AdmissionRecords: []models.AdmissionRecord{
			{AdmissionDate: admitted, SymptomsByDoctor: symptoms},
		},
	}
}

func TestExtractSymptomName(t *testing.T) {
	assert.Equal(t, "Fever", ExtractSymptomName("Fever - high grade 2026-01-10"))
	assert.Equal(t, "Fever", ExtractSymptomName("Fever"))
	assert.Equal(t, "Chest Pain", ExtractSymptomName("Chest Pain - radiating - worse at night"))

	// Extraction is idempotent: a second pass changes nothing.
	once := ExtractSymptomName("Cough - dry 2026-02-01")
	assert.Equal(t, once, ExtractSymptomName(once))
}

func TestExtractSymptomDate(t *testing.T) {
	assert.Equal(t, "2026-01-10", ExtractSymptomDate("Fever - 2026-01-10 evening"))
	assert.Equal(t, "", ExtractSymptomDate("Fever"))
	assert.Equal(t, "", ExtractSymptomDate("Fever - high grade"))
	assert.Equal(t, "", ExtractSymptomDate("Fever - "))
}

func TestComputeSymptomFrequency(t *testing.T) {
	now := time.Now()
	patients := []models.Patient{
		patientWithSymptoms("", "", "", "Male", 30, now, "Fever - day1", "Cough"),
		patientWithSymptoms("", "", "", "Female", 40, now, "Fever"),
	}
	histories := []models.PatientHistory{
		{
			Gender: "Male",
			Age:    55,
			History: []models.HistoryEntry{
				{SymptomsByDoctor: []string{"Fever - archived", "Headache"}},
			},
		},
	}

	report := ComputeSymptomFrequency(patients, histories)
	// Only current patients are counted; the archived patient still
	// contributes its symptom records.
	assert.Equal(t, 2, report.TotalPatients)
	assert.Equal(t, 5, report.TotalSymptomRecords)
	require.NotEmpty(t, report.MostUsedSymptoms)
	assert.Equal(t, SymptomStat{Symptom: "Fever", Count: 3}, report.MostUsedSymptoms[0])
	assert.Equal(t, []string{"Cough", "Headache"}, report.UniqueSymptoms)
	assert.Len(t, report.AllSymptoms, 3)
}

func TestComputeCoOccurringSymptomsPairKey(t *testing.T) {
	now := time.Now()
	patients := []models.Patient{
		patientWithSymptoms("", "", "", "Male", 30, now, "Nausea", "Fever - note"),
		patientWithSymptoms("", "", "", "Male", 31, now, "Fever", "Nausea"),
		patientWithSymptoms("", "", "", "Male", 32, now, "Cough"),
	}

	pairs := ComputeCoOccurringSymptoms(patients, nil)
	require.Len(t, pairs, 1)
	// Pair key is alphabetical regardless of recording order.
	assert.Equal(t, "Fever---Nausea", pairs[0].Pair)
	assert.Equal(t, 2, pairs[0].Count)
}

func TestComputeCoOccurringSymptomsNeedsTwo(t *testing.T) {
	now := time.Now()
	patients := []models.Patient{
		patientWithSymptoms("", "", "", "Male", 30, now, "Fever"),
	}
	assert.Empty(t, ComputeCoOccurringSymptoms(patients, nil))
}

func TestComputeSymptomTrendsSortedAscending(t *testing.T) {
	now := time.Now()
	patients := []models.Patient{
		patientWithSymptoms("", "", "", "Male", 30, now,
			"Fever - 2026-03-02", "Cough - 2026-03-01", "Fever - 2026-03-01", "Rash - undated"),
	}

	points := ComputeSymptomTrends(patients, nil)
	require.Len(t, points, 2)
	assert.Equal(t, "2026-03-01", points[0].Date)
	assert.Equal(t, 2, points[0].Total)
	assert.Equal(t, "2026-03-02", points[1].Date)
	assert.Equal(t, 1, points[1].Total)
}

func TestComputeSeasonalSymptomsAllMonths(t *testing.T) {
	now := time.Now()
	patients := []models.Patient{
		patientWithSymptoms("", "", "", "Male", 30, now,
			"Flu - 2026-01-10", "Flu - 2026-01-11", "Allergy - 2026-04-02"),
	}

	months := ComputeSeasonalSymptoms(patients, nil)
	require.Len(t, months, 12)
	assert.Equal(t, "January", months[0].MonthName)
	assert.Equal(t, 2, months[0].TotalSymptomCount)
	assert.Equal(t, SymptomStat{Symptom: "Flu", Count: 2}, months[0].TopSymptoms[0])
	assert.Equal(t, 1, months[3].TotalSymptomCount)
	assert.Equal(t, 0, months[6].TotalSymptomCount)
	assert.Empty(t, months[6].TopSymptoms)
}

func TestAgeBand(t *testing.T) {
	cases := map[int]string{
		0:  "Under 18",
		17: "Under 18",
		18: "18-30",
		30: "18-30",
		31: "31-45",
		45: "31-45",
		46: "46-60",
		60: "46-60",
		61: "Over 60",
		90: "Over 60",
	}
	for age, want := range cases {
		assert.Equal(t, want, AgeBand(age), "age %d", age)
	}
}

func TestNormalizeGender(t *testing.T) {
	assert.Equal(t, "Male", NormalizeGender("Male"))
	assert.Equal(t, "Female", NormalizeGender("Female"))
	assert.Equal(t, "Other", NormalizeGender("Other"))
	assert.Equal(t, "Other", NormalizeGender("unknown"))
	assert.Equal(t, "Other", NormalizeGender(""))
}

func TestComputeSymptomDemographics(t *testing.T) {
	now := time.Now()
	patients := []models.Patient{
		patientWithSymptoms("", "", "", "Male", 25, now, "Fever", "Cough"),
		patientWithSymptoms("", "", "", "nonbinary", 70, now, "Fever"),
	}

	report := ComputeSymptomDemographics(patients, nil)
	assert.Equal(t, 2, report.ByGender["Male"].TotalCount)
	assert.Equal(t, 1, report.ByGender["Other"].TotalCount)
	assert.Equal(t, 2, report.ByAgeGroup["18-30"].TotalCount)
	assert.Equal(t, 1, report.ByAgeGroup["Over 60"].TotalCount)
}

func TestComputeSymptomsByLocation(t *testing.T) {
	now := time.Now()
	patients := []models.Patient{
		patientWithSymptoms("Pune", "MH", "India", "Male", 30, now, "Fever"),
		patientWithSymptoms("Pune", "", "India", "Male", 30, now, "Cough"),
		// No location at all: skipped entirely.
		patientWithSymptoms("", "", "", "Male", 30, now, "Rash"),
	}

	report := ComputeSymptomsByLocation(patients, nil)
	assert.Equal(t, 2, report.ByCity["Pune"].TotalCount)
	assert.Equal(t, 1, report.ByState["MH"].TotalCount)
	assert.Equal(t, 1, report.ByState["Unknown"].TotalCount)
	assert.Equal(t, 2, report.ByCountry["India"].TotalCount)
	_, hasUnknownCity := report.ByCity["Unknown"]
	assert.False(t, hasUnknownCity)
}

func outbreakPatients(city string, total, recent int, now time.Time, recentSymptoms ...string) []models.Patient {
	var out []models.Patient
	for i := 0; i < recent; i++ {
		out = append(out, patientWithSymptoms(city, "MH", "India", "Male", 30, now.Add(-24*time.Hour), recentSymptoms...))
	}
	for i := recent; i < total; i++ {
		out = append(out, patientWithSymptoms(city, "MH", "India", "Male", 30, now.Add(-60*24*time.Hour), "Old"))
	}
	return out
}

func TestComputeOutbreakReportDominantBoundary(t *testing.T) {
	now := time.Now()

	// 10 recent admissions, symptom on 4 of them: exactly 40% dominates.
	patients := outbreakPatients("Pune", 10, 10, now)
	for i := 0; i < 4; i++ {
		patients[i].AdmissionRecords[0].SymptomsByDoctor = []string{"Dengue - cluster"}
	}
	report := ComputeOutbreakReport(patients, now)
	require.Len(t, report.OutbreakAlerts, 1)
	assert.Equal(t, "Pune, MH, India", report.OutbreakAlerts[0].Location)
	require.Len(t, report.OutbreakAlerts[0].DominantSymptoms, 1)
	assert.Equal(t, "Dengue", report.OutbreakAlerts[0].DominantSymptoms[0].Symptom)
	assert.InDelta(t, 40.0, report.OutbreakAlerts[0].DominantSymptoms[0].Percentage, 0.001)

	// At 39% the symptom no longer dominates and the alert disappears.
	patients = outbreakPatients("Pune", 100, 100, now)
	for i := 0; i < 39; i++ {
		patients[i].AdmissionRecords[0].SymptomsByDoctor = []string{"Dengue"}
	}
	report = ComputeOutbreakReport(patients, now)
	assert.Empty(t, report.OutbreakAlerts)
}

func TestComputeOutbreakReportAlertLevels(t *testing.T) {
	now := time.Now()

	// 6 of 10 patients recent: exactly 60% is High.
	patients := outbreakPatients("Pune", 10, 6, now, "Dengue")
	report := ComputeOutbreakReport(patients, now)
	require.Len(t, report.OutbreakAlerts, 1)
	assert.Equal(t, "High", report.OutbreakAlerts[0].AlertLevel)
	assert.InDelta(t, 60.0, report.OutbreakAlerts[0].RecentAdmissionPercentage, 0.001)

	// 5 of 10 is Medium.
	patients = outbreakPatients("Nashik", 10, 5, now, "Dengue")
	report = ComputeOutbreakReport(patients, now)
	require.Len(t, report.OutbreakAlerts, 1)
	assert.Equal(t, "Medium", report.OutbreakAlerts[0].AlertLevel)

	// Below 30% recent share nothing fires.
	patients = outbreakPatients("Mumbai", 20, 5, now, "Dengue")
	report = ComputeOutbreakReport(patients, now)
	assert.Empty(t, report.OutbreakAlerts)
}

func TestComputeOutbreakReportSkipsSmallAndIncompleteLocations(t *testing.T) {
	now := time.Now()

	// Fewer than three recent admissions never alerts.
	patients := outbreakPatients("Pune", 2, 2, now, "Dengue")
	report := ComputeOutbreakReport(patients, now)
	assert.Empty(t, report.OutbreakAlerts)

	// Patients missing any location field are excluded from grouping.
	patients = outbreakPatients("", 10, 10, now, "Dengue")
	report = ComputeOutbreakReport(patients, now)
	assert.Empty(t, report.OutbreakAlerts)
}

func TestComputeOutbreakReportCountsAdmissionsNotPatients(t *testing.T) {
	now := time.Now()

	// One patient readmitted three times inside the window still clears
	// the minimum recent-admission bar.
	patient := patientWithSymptoms("Pune", "MH", "India", "Male", 30, now.Add(-24*time.Hour), "Dengue - cluster")
	for i := 0; i < 2; i++ {
		patient.AdmissionRecords = append(patient.AdmissionRecords, models.AdmissionRecord{
			AdmissionDate:    now.Add(-time.Duration(2+i) * 24 * time.Hour),
			SymptomsByDoctor: []string{"Dengue - cluster"},
		})
	}

	report := ComputeOutbreakReport([]models.Patient{patient}, now)
	require.Len(t, report.OutbreakAlerts, 1)
	alert := report.OutbreakAlerts[0]
	assert.Equal(t, "Pune, MH, India", alert.Location)
	assert.Equal(t, 1, alert.TotalPatients)
	assert.Equal(t, 3, alert.RecentAdmissionCount)
	require.Len(t, alert.DominantSymptoms, 1)
	assert.Equal(t, 3, alert.DominantSymptoms[0].Count)
	assert.Equal(t, "High", alert.AlertLevel)
}

func TestComputeOutbreakReportSortsHighFirst(t *testing.T) {
	now := time.Now()
	patients := append(
		outbreakPatients("Nashik", 10, 5, now, "Dengue"),
		outbreakPatients("Pune", 10, 9, now, "Dengue")...,
	)
	report := ComputeOutbreakReport(patients, now)
	require.Len(t, report.OutbreakAlerts, 2)
	assert.Equal(t, "High", report.OutbreakAlerts[0].AlertLevel)
	assert.Equal(t, "Pune, MH, India", report.OutbreakAlerts[0].Location)
	assert.Equal(t, 2, report.AlertCount)
	assert.False(t, report.LastUpdated.IsZero())
}

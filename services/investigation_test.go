package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Aadarsh-Mane/common-backend/models"
)

func TestBuildInvestigationDetailsStringShorthand(t *testing.T) {
	details := BuildInvestigationDetails("Blood Test", "CBC, LFT , KFT")
	assert.Equal(t, primitive.M{"parameters": []string{"CBC", "LFT", "KFT"}}, details)

	details = BuildInvestigationDetails("X-Ray", "left wrist")
	assert.Equal(t, primitive.M{"bodySite": "left wrist"}, details)

	details = BuildInvestigationDetails("CT PNS", "paranasal sinuses")
	assert.Equal(t, primitive.M{"bodySite": "paranasal sinuses"}, details)

	details = BuildInvestigationDetails("DEXA Scan", "standard protocol")
	assert.Equal(t, primitive.M{"testProtocol": "standard protocol"}, details)

	details = BuildInvestigationDetails("Breath Test", "lactulose")
	assert.Equal(t, primitive.M{"testSubstance": "lactulose"}, details)

	details = BuildInvestigationDetails("Biopsy", "skin lesion")
	assert.Equal(t, primitive.M{"parameters": []string{"skin lesion"}}, details)
}

func TestBuildInvestigationDetailsObjectPassThrough(t *testing.T) {
	payload := map[string]interface{}{"bodySite": "chest", "views": 2}
	details := BuildInvestigationDetails("X-Ray", payload)
	assert.Equal(t, primitive.M{"bodySite": "chest", "views": 2}, details)

	assert.Equal(t, primitive.M{}, BuildInvestigationDetails("X-Ray", nil))
	assert.Equal(t, primitive.M{}, BuildInvestigationDetails("X-Ray", "  "))
}

func TestFullInvestigationName(t *testing.T) {
	assert.Equal(t, "Sweat Chloride", FullInvestigationName("Other", "Sweat Chloride"))
	assert.Equal(t, "Other", FullInvestigationName("Other", ""))
	assert.Equal(t, "MRI", FullInvestigationName("MRI", "ignored"))

	inv := models.Investigation{InvestigationType: "Other", OtherInvestigationType: "Sweat Chloride"}
	assert.Equal(t, "Sweat Chloride", inv.FullName())
}

func TestDaysSinceOrdered(t *testing.T) {
	now := time.Now()
	assert.Equal(t, 0, DaysSinceOrdered(now, now))
	assert.Equal(t, 0, DaysSinceOrdered(now.Add(-23*time.Hour), now))
	assert.Equal(t, 1, DaysSinceOrdered(now.Add(-25*time.Hour), now))
	assert.Equal(t, 7, DaysSinceOrdered(now.Add(-7*24*time.Hour), now))
	assert.Equal(t, 0, DaysSinceOrdered(time.Time{}, now))
}

func TestIsInvestigationOverdue(t *testing.T) {
	now := time.Now()

	// STAT outlives one day.
	assert.False(t, IsInvestigationOverdue(models.InvestigationOrdered, models.PrioritySTAT, now.Add(-23*time.Hour), now))
	assert.True(t, IsInvestigationOverdue(models.InvestigationOrdered, models.PrioritySTAT, now.Add(-25*time.Hour), now))

	// Urgent three days, Routine a week.
	assert.False(t, IsInvestigationOverdue(models.InvestigationScheduled, models.PriorityUrgent, now.Add(-2*24*time.Hour), now))
	assert.True(t, IsInvestigationOverdue(models.InvestigationScheduled, models.PriorityUrgent, now.Add(-4*24*time.Hour), now))
	assert.False(t, IsInvestigationOverdue(models.InvestigationOrdered, models.PriorityRoutine, now.Add(-6*24*time.Hour), now))
	assert.True(t, IsInvestigationOverdue(models.InvestigationOrdered, models.PriorityRoutine, now.Add(-8*24*time.Hour), now))

	// Closed states are never overdue.
	assert.False(t, IsInvestigationOverdue(models.InvestigationResultsAvailable, models.PrioritySTAT, now.Add(-30*24*time.Hour), now))
	assert.False(t, IsInvestigationOverdue(models.InvestigationCancelled, models.PrioritySTAT, now.Add(-30*24*time.Hour), now))
}

func TestEnhanceInvestigation(t *testing.T) {
	now := time.Now()
	inv := models.Investigation{
		Status:    models.InvestigationResultsAvailable,
		Priority:  models.PriorityRoutine,
		OrderDate: now.Add(-49 * time.Hour),
		Results: &models.InvestigationResult{
			IsAbnormal:  true,
			Attachments: []string{"https://lab/report.pdf"},
		},
	}

	enhanced := EnhanceInvestigation(inv, now)
	assert.Equal(t, 2, enhanced.DaysSinceOrdered)
	assert.False(t, enhanced.IsOverdue)
	assert.True(t, enhanced.HasResults)
	assert.True(t, enhanced.HasAttachments)

	open := models.Investigation{
		Status:    models.InvestigationOrdered,
		Priority:  models.PrioritySTAT,
		OrderDate: now.Add(-3 * 24 * time.Hour),
	}
	enhanced = EnhanceInvestigation(open, now)
	assert.True(t, enhanced.IsOverdue)
	assert.False(t, enhanced.HasResults)
	assert.False(t, enhanced.HasAttachments)
	require.Nil(t, enhanced.Results)
}

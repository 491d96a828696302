package mockbackend

import (
	"fmt"
	"strings"

	"medfollow-client/internal/dto"
)

type finding struct {
	issue  string
	advice string
	urgent bool
}

// AnalyzeVitals grades a reading with fixed clinical thresholds. Readings far
// outside the normal range escalate.
func AnalyzeVitals(req dto.AnalyzeVitalsRequest) dto.AnalyzeVitalsResponse {
	var found []finding

	switch t := req.Temperature; {
	case t >= 103:
		found = append(found, finding{fmt.Sprintf("Very high temperature (%.1f°F)", t), "Seek medical care immediately.", true})
	case t > 99.5:
		found = append(found, finding{fmt.Sprintf("Elevated temperature (%.1f°F, possible fever)", t), "Stay hydrated, rest and re-check every 4 hours.", false})
	case t > 0 && t < 96:
		found = append(found, finding{fmt.Sprintf("Low temperature (%.1f°F)", t), "Keep warm and consult your doctor.", false})
	}

	sys, dia := req.Systolic, req.Diastolic
	switch {
	case sys >= 180 || dia >= 120:
		found = append(found, finding{fmt.Sprintf("Very high blood pressure (%d/%d mmHg)", sys, dia), "This is a hypertensive crisis. Get emergency care now.", true})
	case sys > 140 || dia > 90:
		found = append(found, finding{fmt.Sprintf("High blood pressure (%d/%d mmHg)", sys, dia), "Reduce salt, limit stress and consult your physician.", false})
	case (sys > 0 && sys < 90) || (dia > 0 && dia < 60):
		found = append(found, finding{fmt.Sprintf("Low blood pressure (%d/%d mmHg)", sys, dia), "Drink fluids and rise slowly from sitting.", false})
	}

	switch s := req.BloodSugar; {
	case s >= 300 || (s > 0 && s < 54):
		found = append(found, finding{fmt.Sprintf("Dangerous blood sugar (%d mg/dL)", s), "Get emergency care now.", true})
	case s > 180:
		found = append(found, finding{fmt.Sprintf("High blood sugar (%d mg/dL)", s), "Reduce carbohydrates and follow your diabetes plan.", false})
	case s > 0 && s < 70:
		found = append(found, finding{fmt.Sprintf("Low blood sugar (%d mg/dL)", s), "Take fast-acting carbohydrates such as juice.", false})
	}

	switch b := req.BMI; {
	case b >= 30:
		found = append(found, finding{fmt.Sprintf("BMI in the obese range (%.1f)", b), "Discuss a recovery diet with your doctor.", false})
	case b > 0 && b < 18.5:
		found = append(found, finding{fmt.Sprintf("BMI below the healthy range (%.1f)", b), "Eat regular protein-rich meals while healing.", false})
	}

	if len(found) == 0 {
		return dto.AnalyzeVitalsResponse{
			Severity: "low",
			Message:  "All your vitals appear to be within normal ranges. Continue your prescribed regimen, stay hydrated and rest.",
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d concern(s) detected:\n", len(found))
	emergency := false
	for _, f := range found {
		fmt.Fprintf(&b, "• %s. %s\n", f.issue, f.advice)
		emergency = emergency || f.urgent
	}
	b.WriteString("Please share this report with your doctor.")

	severity := "moderate"
	if emergency {
		severity = "high"
	}
	return dto.AnalyzeVitalsResponse{Severity: severity, Message: b.String(), Emergency: emergency}
}

type reply struct {
	keywords []string
	text     string
	severity string
	alert    bool
}

var replies = []reply{
	{[]string{"chest pain", "can't breathe", "cannot breathe", "unconscious", "heavy bleeding"},
		"This could be an emergency. Call 108 or go to the nearest emergency room now.", "high", true},
	{[]string{"breath", "breathing"},
		"Sit upright and breathe slowly. If it gets worse or your lips turn blue, seek emergency care.", "moderate", false},
	{[]string{"fever", "temperature", "chills"},
		"A mild fever can follow surgery. Drink fluids and rest. Call your doctor if it stays above 101°F.", "moderate", false},
	{[]string{"wound", "incision", "stitches", "pus", "discharge"},
		"Keep the wound clean and dry. Redness, swelling, foul smell or discharge need a doctor's review.", "moderate", false},
	{[]string{"pain", "ache", "hurt", "sore"},
		"Some pain is expected while healing. Take your prescribed pain relief and rest the area.", "low", false},
	{[]string{"swelling", "swollen"},
		"Elevate the area and apply a cold pack for 15 minutes at a time.", "low", false},
	{[]string{"medicine", "medication", "tablet", "pill"},
		"Take medicines exactly as prescribed and complete any antibiotic course.", "low", false},
}

// Reply answers a post-op chat message with keyword rules.
func Reply(req dto.PostOpChatRequest) dto.PostOpChatResponse {
	msg := strings.ToLower(req.Message)
	for _, r := range replies {
		for _, k := range r.keywords {
			if strings.Contains(msg, k) {
				return dto.PostOpChatResponse{ResponseText: r.text, Severity: r.severity, Alert: r.alert}
			}
		}
	}

	name := req.PatientName
	if name == "" {
		name = "there"
	}
	text := fmt.Sprintf("Thanks %s. Tell me about any pain, fever, wound or breathing changes after your %s.", name, surgeryLabel(req.SurgeryType))
	return dto.PostOpChatResponse{ResponseText: text, Severity: "low"}
}

func surgeryLabel(s string) string {
	if strings.TrimSpace(s) == "" {
		return "surgery"
	}
	return s
}

package seed

import (
	"encoding/json"
	"fmt"

	"github.com/imec-intel/hub/pkg/catalog"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// DemoBundle returns the two demonstration records (an Israeli rail
// regulation and a UAE port budget) with fresh ids, plus the sources they
// cite.
func DemoBundle() (Bundle, error) {
	suffix, err := gonanoid.Generate(idAlphabet, 10)
	if err != nil {
		return nil, fmt.Errorf("failed to generate demo id: %w", err)
	}

	sources := []map[string]any{
		{
			"id":        "src_il_oj_20250412",
			"url":       "https://www.gov.il/official-gazette/2025-04-12",
			"publisher": "Israel Official Gazette",
			"type":      "gov",
			"language":  "he",
		},
		{
			"id":        "src_ae_oj_20250320",
			"url":       "https://uaelegislation.gov.ae/gazette/2025-03-20",
			"publisher": "UAE Official Gazette",
			"type":      "gov",
			"language":  "ar",
		},
	}

	legal := map[string]any{
		"id":                "li_seed_" + suffix,
		"title":             "Rail Interoperability Regulation",
		"instrument_type":   "regulation",
		"country_id":        "IL",
		"source_id":         "src_il_oj_20250412",
		"status":            "adopted",
		"adoption_date":     "2025-04-12",
		"segments":          []string{"rail", "data"},
		"topics":            []string{"standards", "safety"},
		"summary_fr":        "Règlement d'interopérabilité ferroviaire (Israël).",
		"summary_en":        "Rail interoperability regulation (Israel).",
		"summary_ar":        "لائحة قابلية التشغيل البيني للسكك الحديدية (إسرائيل).",
		"credibility_score": 0.8,
	}

	budget := map[string]any{
		"id":                 "bud_seed_" + suffix,
		"amount_original":    500000000,
		"currency":           "USD",
		"date":               "2025-09-01",
		"segment":            "port",
		"countries_involved": []string{"AE"},
		"source_id":          "src_ae_oj_20250320",
		"summary_fr":         "Capex portuaire lié à IMEC (EAU).",
		"summary_en":         "Port capex related to IMEC (UAE).",
		"summary_ar":         "إنفاق رأسمالي للموانئ مرتبط بـ IMEC (الإمارات).",
		"credibility_score":  0.82,
	}

	b := Bundle{}
	for _, s := range sources {
		if err := b.add(catalog.Sources, s); err != nil {
			return nil, err
		}
	}
	if err := b.add(catalog.LegalInstruments, legal); err != nil {
		return nil, err
	}
	if err := b.add(catalog.Budgets, budget); err != nil {
		return nil, err
	}
	return b, nil
}

func (b Bundle) add(collection string, payload map[string]any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode %s payload: %w", collection, err)
	}
	b[collection] = append(b[collection], data)
	return nil
}

package tax

import (
	"strconv"
	"strings"

	"petledger/internal/domain"
)

// State is one entry of the GST state-code table.
type State struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// states is ordered by code. 25 (Daman and Diu) was merged into 26 in 2020
// but still appears on older registrations.
var states = []State{
	{"01", "Jammu and Kashmir"},
	{"02", "Himachal Pradesh"},
	{"03", "Punjab"},
	{"04", "Chandigarh"},
	{"05", "Uttarakhand"},
	{"06", "Haryana"},
	{"07", "Delhi"},
	{"08", "Rajasthan"},
	{"09", "Uttar Pradesh"},
	{"10", "Bihar"},
	{"11", "Sikkim"},
	{"12", "Arunachal Pradesh"},
	{"13", "Nagaland"},
	{"14", "Manipur"},
	{"15", "Mizoram"},
	{"16", "Tripura"},
	{"17", "Meghalaya"},
	{"18", "Assam"},
	{"19", "West Bengal"},
	{"20", "Jharkhand"},
	{"21", "Odisha"},
	{"22", "Chhattisgarh"},
	{"23", "Madhya Pradesh"},
	{"24", "Gujarat"},
	{"25", "Daman and Diu"},
	{"26", "Dadra and Nagar Haveli and Daman and Diu"},
	{"27", "Maharashtra"},
	{"29", "Karnataka"},
	{"30", "Goa"},
	{"31", "Lakshadweep"},
	{"32", "Kerala"},
	{"33", "Tamil Nadu"},
	{"34", "Puducherry"},
	{"35", "Andaman and Nicobar Islands"},
	{"36", "Telangana"},
	{"37", "Andhra Pradesh"},
	{"38", "Ladakh"},
	{"97", "Other Territory"},
}

var stateByCode = func() map[string]string {
	m := make(map[string]string, len(states))
	for _, s := range states {
		m[s.Code] = s.Name
	}
	return m
}()

// normalizeStateCode turns "7", "07" or " 07 " into "07". It returns "" for
// anything that is not a one- or two-digit number.
func normalizeStateCode(code string) string {
	code = strings.TrimSpace(code)
	if code == "" || len(code) > 2 {
		return ""
	}
	n, err := strconv.Atoi(code)
	if err != nil || n < 0 {
		return ""
	}
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

// StateName returns the state name for a GST state code.
func StateName(code string) (string, bool) {
	name, ok := stateByCode[normalizeStateCode(code)]
	return name, ok
}

// LookupState returns the table entry for code, accepting unpadded codes.
func LookupState(code string) (State, bool) {
	norm := normalizeStateCode(code)
	name, ok := stateByCode[norm]
	if !ok {
		return State{}, false
	}
	return State{Code: norm, Name: name}, true
}

// States returns a copy of the state table ordered by code.
func States() []State {
	out := make([]State, len(states))
	copy(out, states)
	return out
}

// IsInterstate reports whether a supply from supplierState to placeOfSupply
// crosses a state boundary. Unknown codes are treated as intrastate.
func IsInterstate(supplierState, placeOfSupply string) bool {
	a, b := normalizeStateCode(supplierState), normalizeStateCode(placeOfSupply)
	if a == "" || b == "" {
		return false
	}
	return a != b
}

// RegimeFor picks the dual or single GST regime from the two state codes.
func RegimeFor(supplierState, placeOfSupply string) domain.TaxRegime {
	if IsInterstate(supplierState, placeOfSupply) {
		return domain.RegimeInterstateSingle
	}
	return domain.RegimeIntrastateDual
}

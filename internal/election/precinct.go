package election

import (
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
)

// Colorado precinct numbers encode the districts a precinct votes in:
//   - first digit: congressional district
//   - second and third digits: state senate district
//   - fourth and fifth digits: state representative district
//   - sixth and seventh digits: county number
//   - last three digits: precinct
//
// See https://www.sos.state.co.us/pubs/elections/FAQs/VoterFAQs.html
var precinctRe = regexp.MustCompile(`^(\d{1})(\d{2})(\d{2})(\d{2})(\d{3})$`)

// ProvisionalPrecinct is the literal the SOS uses for low-count precincts
// whose numbers are withheld to preserve voter privacy.
const ProvisionalPrecinct = "Provisional"

// ErrProvisionalUnsupported is returned where provisional rows cannot be
// attributed to districts, such as plan-level aggregation.
var ErrProvisionalUnsupported = errors.New("provisional precincts not supported")

// ErrUnknownProvisional is returned when no district guess exists for a
// provisional row's year and county.
var ErrUnknownProvisional = errors.New("no provisional district table for year and county")

// PrecinctCode is a decoded 10-digit precinct number.
type PrecinctCode struct {
	Raw    string
	groups [5]int
}

// ParsePrecinctNumber decodes a 10-digit SOS precinct number.
func ParsePrecinctNumber(s string) (PrecinctCode, error) {
	m := precinctRe.FindStringSubmatch(s)
	if m == nil {
		return PrecinctCode{}, fmt.Errorf("unable to match precinct number %q", s)
	}
	code := PrecinctCode{Raw: s}
	for i := 0; i < 5; i++ {
		v, err := strconv.Atoi(m[i+1])
		if err != nil {
			return PrecinctCode{}, fmt.Errorf("invalid precinct number %q: %w", s, err)
		}
		code.groups[i] = v
	}
	return code, nil
}

// Group returns the district number carried by a match group
// (MatchGroupCongressional through MatchGroupCounty).
func (p PrecinctCode) Group(n int) int {
	return p.groups[n]
}

// CountyNumber returns the SOS county number segment.
func (p PrecinctCode) CountyNumber() int {
	return p.groups[MatchGroupCounty]
}

// Short returns the trailing 3-digit precinct number.
func (p PrecinctCode) Short() int {
	return p.groups[4]
}

// CommissionerResolver maps a county's short precinct number to a
// commissioner district.
type CommissionerResolver interface {
	// Resolve returns the commissioner district for a short precinct
	// number, or false when the precinct is unmapped.
	Resolve(shortPrecinct int) (int, bool)
}

// Assignment is the district numbers resolved for one result row, keyed
// by district type. Types that could not be resolved are absent.
type Assignment map[string]int

// Assigner resolves precinct numbers to per-type district numbers.
type Assigner struct {
	year         int
	types        []DistrictType
	commissioner CommissionerResolver
	provisional  ProvisionalTable
	logger       *slog.Logger
}

// AssignerOption configures an Assigner.
type AssignerOption func(*Assigner)

// WithCommissionerResolver supplies the resolver for county-scoped types.
func WithCommissionerResolver(r CommissionerResolver) AssignerOption {
	return func(a *Assigner) { a.commissioner = r }
}

// WithProvisionalTable supplies district guesses for provisional rows.
// Without a table, provisional rows fail with ErrProvisionalUnsupported.
func WithProvisionalTable(t ProvisionalTable) AssignerOption {
	return func(a *Assigner) { a.provisional = t }
}

// NewAssigner creates an Assigner for one election year and set of
// district types.
func NewAssigner(year int, types []DistrictType, logger *slog.Logger, opts ...AssignerOption) *Assigner {
	if logger == nil {
		logger = slog.Default()
	}
	a := &Assigner{
		year:   year,
		types:  types,
		logger: logger,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Assign resolves a precinct number (and its row's county, needed for
// provisional rows) into district numbers per configured type.
//
// County-scoped types resolve only when the precinct's county number
// matches; unmapped short precincts are logged and left unassigned, so
// the row still counts toward the statewide types.
func (a *Assigner) Assign(precinctNumber, county string) (Assignment, error) {
	if precinctNumber == ProvisionalPrecinct {
		return a.assignProvisional(county)
	}

	code, err := ParsePrecinctNumber(precinctNumber)
	if err != nil {
		return nil, err
	}

	assignment := make(Assignment, len(a.types))
	for _, dt := range a.types {
		if !dt.CountyScoped() {
			assignment[dt.Key] = code.Group(dt.MatchGroup)
			continue
		}
		if dt.CountyNumber != code.CountyNumber() {
			continue
		}
		if a.commissioner == nil {
			return nil, fmt.Errorf("district type %s requires a commissioner resolver", dt.Key)
		}
		district, ok := a.commissioner.Resolve(code.Short())
		if !ok {
			a.logger.Warn("unhandled precinct number",
				slog.Int("short_precinct", code.Short()),
				slog.String("precinct_number", precinctNumber))
			continue
		}
		assignment[dt.Key] = district
	}
	return assignment, nil
}

// assignProvisional attributes a provisional row using the per-year,
// per-county guess table.
func (a *Assigner) assignProvisional(county string) (Assignment, error) {
	if a.provisional == nil {
		return nil, ErrProvisionalUnsupported
	}
	guesses, ok := a.provisional.Lookup(a.year, county)
	if !ok {
		return nil, fmt.Errorf("%w: year=%d county=%q", ErrUnknownProvisional, a.year, county)
	}

	assignment := make(Assignment, len(a.types))
	for _, dt := range a.types {
		if dt.CountyScoped() && county != dt.CountyName {
			a.logger.Debug("provisional row outside county",
				slog.String("county", county),
				slog.String("district_type", dt.Key))
			continue
		}
		if district, ok := guesses[dt.Key]; ok {
			assignment[dt.Key] = district
		}
	}
	return assignment, nil
}

package engine

// TriggerCode is the integer written to the trigger port for a
// decoded trial, per §6's hardware register surface (1..11 for this
// paradigm family).
type TriggerCode int

const (
	TriggerLL600 TriggerCode = 1
	TriggerLL200 TriggerCode = 2
	TriggerLC    TriggerCode = 3
	TriggerLR200 TriggerCode = 4
	TriggerLR600 TriggerCode = 5
	TriggerRL600 TriggerCode = 6
	TriggerRL200 TriggerCode = 7
	TriggerRC    TriggerCode = 8
	TriggerRR200 TriggerCode = 9
	TriggerRR600 TriggerCode = 10
	TriggerCC    TriggerCode = 11
)

// Laterality identifies which of the three streams (center, left-lead,
// right-lead) the adapter or probe of a trial uses.
type Laterality int

const (
	Center Laterality = iota
	LeftLead
	RightLead
)

// itd names which ITD anchor pair (200us or 600us) a lateralized
// probe should read from. The adapter always uses the 600us anchors
// regardless of this value (§4.2).
type itd int

const (
	itdNone itd = iota // center probe: no lead/lag anchors used
	itd200
	itd600
)

// trial is the tuple fixed at the sample where counter0 wraps to 0
// (§4.1's ordering guarantee): everything the region evaluator and
// output stage need for one soa.
type trial struct {
	Trigger     TriggerCode
	AdapterType Laterality
	ProbeType   Laterality
	ProbeITD    itd
}

// trialTable maps pattern bytes 'A'-'L' to their trial tuple, per the
// table in §4.1. K and L are deliberately identical: the original
// kernel source lets 'L' fall through to the 'K' case (spec.md §9,
// Open Questions), and an implementation must preserve that.
var trialTable = map[byte]trial{
	'A': {Trigger: TriggerLL600, AdapterType: LeftLead, ProbeType: LeftLead, ProbeITD: itd600},
	'B': {Trigger: TriggerLL200, AdapterType: LeftLead, ProbeType: LeftLead, ProbeITD: itd200},
	'C': {Trigger: TriggerLC, AdapterType: LeftLead, ProbeType: Center, ProbeITD: itdNone},
	'D': {Trigger: TriggerLR200, AdapterType: LeftLead, ProbeType: RightLead, ProbeITD: itd200},
	'E': {Trigger: TriggerLR600, AdapterType: LeftLead, ProbeType: RightLead, ProbeITD: itd600},
	'F': {Trigger: TriggerRL600, AdapterType: RightLead, ProbeType: LeftLead, ProbeITD: itd600},
	'G': {Trigger: TriggerRL200, AdapterType: RightLead, ProbeType: LeftLead, ProbeITD: itd200},
	'H': {Trigger: TriggerRC, AdapterType: RightLead, ProbeType: Center, ProbeITD: itdNone},
	'I': {Trigger: TriggerRR200, AdapterType: RightLead, ProbeType: RightLead, ProbeITD: itd200},
	'J': {Trigger: TriggerRR600, AdapterType: RightLead, ProbeType: RightLead, ProbeITD: itd600},
	'K': {Trigger: TriggerCC, AdapterType: Center, ProbeType: Center, ProbeITD: itdNone},
	'L': {Trigger: TriggerCC, AdapterType: Center, ProbeType: Center, ProbeITD: itdNone},
}

const (
	codePause  = '@'
	codeJitter = '.'
)

package finance

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"github.com/ventureboard/backend/internal/domain/entity"
	"github.com/ventureboard/backend/internal/domain/valueobject"
)

// DirectionSignal names the evidence a transfer direction was taken from.
type DirectionSignal string

const (
	DirectionSignalNone        DirectionSignal = ""
	DirectionSignalStructured  DirectionSignal = "structured"
	DirectionSignalCategory    DirectionSignal = "category"
	DirectionSignalDescription DirectionSignal = "description"
)

var outflowPhrases = []string{
	"transfer to", "transferred to", "wire to", "sent to", "payment to", "paid to", "funding to", "loan to",
}

var inflowPhrases = []string{
	"transfer from", "transferred from", "wire from", "received from", "receipt from", "deposit from",
	"payment from", "funding from", "loan from",
}

// counterparty names end at the first of these separators
var nameTerminators = []string{" - ", ",", ";", "(", "|", " for ", " re ", " ref ", " invoice", "#"}

var legalSuffixes = map[string]bool{
	"inc": true, "llc": true, "ltd": true, "limited": true, "corp": true, "corporation": true,
	"co": true, "company": true, "gmbh": true, "plc": true, "sa": true, "ag": true, "bv": true,
}

// DetectDirection returns the direction of an intercompany transfer. The structured
// Direction field always wins. Text inference (category, then description phrases)
// runs only when cfg allows it; conflicting or missing evidence yields unknown.
func DetectDirection(tx *entity.Transaction, cfg valueobject.MatchingConfig) (entity.TransferDirection, DirectionSignal) {
	switch tx.Direction {
	case entity.TransferDirectionOutflow, entity.TransferDirectionInflow:
		return tx.Direction, DirectionSignalStructured
	}
	if !cfg.AllowTextInference {
		return entity.TransferDirectionUnknown, DirectionSignalNone
	}

	switch CategoryKey(tx.Category) {
	case entity.CategoryTransferOut:
		return entity.TransferDirectionOutflow, DirectionSignalCategory
	case entity.CategoryTransferIn:
		return entity.TransferDirectionInflow, DirectionSignalCategory
	}

	description := asciiLower(tx.Description)
	_, isOut := findPhrase(description, outflowPhrases)
	_, isIn := findPhrase(description, inflowPhrases)
	switch {
	case isOut && !isIn:
		return entity.TransferDirectionOutflow, DirectionSignalDescription
	case isIn && !isOut:
		return entity.TransferDirectionInflow, DirectionSignalDescription
	}
	return entity.TransferDirectionUnknown, DirectionSignalNone
}

// asciiLower folds only A-Z so byte offsets in the result index the input.
// Every phrase and terminator is ASCII.
func asciiLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

// findPhrase returns the offset just past the first whole-word occurrence of any phrase.
func findPhrase(text string, phrases []string) (int, bool) {
	best := -1
	for _, phrase := range phrases {
		for from := 0; from < len(text); {
			idx := strings.Index(text[from:], phrase)
			if idx < 0 {
				break
			}
			start := from + idx
			end := start + len(phrase)
			if isWordBoundary(text, start-1) && isWordBoundary(text, end) {
				if best < 0 || end < best {
					best = end
				}
				break
			}
			from = start + 1
		}
	}
	return best, best >= 0
}

func isWordBoundary(text string, i int) bool {
	if i < 0 || i >= len(text) {
		return true
	}
	c := text[i]
	return !((c >= 'a' && c <= 'z') || (c >= '0' && c <= '9'))
}

// TransferChange describes one row rewritten by a maintenance pass.
type TransferChange struct {
	Before    *entity.Transaction
	After     *entity.Transaction
	Direction entity.TransferDirection
	Signal    DirectionSignal
}

// SkippedTransfer is a row a maintenance pass could not handle.
type SkippedTransfer struct {
	Transaction *entity.Transaction
	Reason      string
}

// NormalizationReport is the outcome of NormalizeTransfers.
type NormalizationReport struct {
	Changed   []TransferChange
	Unknown   []*entity.Transaction
	Unchanged int
}

// NormalizeTransfers forces sign and category of intercompany rows to agree with
// their direction: outflows negative with category transfer_out, inflows positive
// with category transfer_in. Rows with unknown direction are reported, never
// guessed. The pass is idempotent; applying its changes and running it again
// reports no changes.
func NormalizeTransfers(transactions []*entity.Transaction, cfg valueobject.MatchingConfig) NormalizationReport {
	var report NormalizationReport
	for _, tx := range SortTransactions(transactions) {
		if !tx.Type.IsIntercompany() {
			continue
		}
		direction, signal := DetectDirection(tx, cfg)
		if direction == entity.TransferDirectionUnknown {
			report.Unknown = append(report.Unknown, tx)
			continue
		}

		normalized := normalizedTransfer(tx, direction)
		if normalized.Type == tx.Type && normalized.Category == tx.Category && normalized.Amount.Equal(tx.Amount) {
			report.Unchanged++
			continue
		}
		report.Changed = append(report.Changed, TransferChange{
			Before:    tx,
			After:     normalized,
			Direction: direction,
			Signal:    signal,
		})
	}
	return report
}

func normalizedTransfer(tx *entity.Transaction, direction entity.TransferDirection) *entity.Transaction {
	normalized := *tx
	normalized.Type = entity.TransactionTypeIntercompany
	if direction == entity.TransferDirectionOutflow {
		normalized.Amount = tx.Amount.Abs().Neg()
		normalized.Category = entity.CategoryTransferOut
	} else {
		normalized.Amount = tx.Amount.Abs()
		normalized.Category = entity.CategoryTransferIn
	}
	return &normalized
}

// DuplicateGroup is a set of rows sharing one duplicate key.
type DuplicateGroup struct {
	Key        string
	Kept       *entity.Transaction
	Duplicates []*entity.Transaction
}

// DuplicateReport is the outcome of FindDuplicateTransfers.
type DuplicateReport struct {
	Groups []DuplicateGroup
	Remove []uuid.UUID
}

// DuplicateKey identifies intercompany rows that describe the same transfer.
func DuplicateKey(tx *entity.Transaction) string {
	return strings.Join([]string{
		entity.DateOnly(tx.Date).Format(time.DateOnly),
		string(tx.Type.Canonical()),
		tx.NormalizedCategory(),
		tx.Amount.String(),
		strings.TrimSpace(tx.Description),
	}, "|")
}

// FindDuplicateTransfers groups intercompany rows by DuplicateKey and keeps the
// first of each group in (date, id) order. It only reports; removal is up to
// the caller.
func FindDuplicateTransfers(transactions []*entity.Transaction) DuplicateReport {
	groups := map[string]*DuplicateGroup{}
	var order []string

	for _, tx := range SortTransactions(transactions) {
		if !tx.Type.IsIntercompany() {
			continue
		}
		key := DuplicateKey(tx)
		group, ok := groups[key]
		if !ok {
			groups[key] = &DuplicateGroup{Key: key, Kept: tx}
			order = append(order, key)
			continue
		}
		group.Duplicates = append(group.Duplicates, tx)
	}

	var report DuplicateReport
	for _, key := range order {
		group := groups[key]
		if len(group.Duplicates) == 0 {
			continue
		}
		report.Groups = append(report.Groups, *group)
		for _, dup := range group.Duplicates {
			report.Remove = append(report.Remove, dup.ID)
		}
	}
	return report
}

// CompanyRef identifies a company taking part in intercompany matching.
type CompanyRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type companyDirectory struct {
	byID map[uuid.UUID]CompanyRef
	keys []companyKey
}

type companyKey struct {
	ref CompanyRef
	key string
}

func newCompanyDirectory(ledgers []entity.CompanyLedger) *companyDirectory {
	d := &companyDirectory{byID: make(map[uuid.UUID]CompanyRef, len(ledgers))}
	for _, ledger := range ledgers {
		ref := CompanyRef{ID: ledger.CompanyID, Name: ledger.Name}
		d.byID[ref.ID] = ref
		if key := CompanyNameKey(ledger.Name); key != "" {
			d.keys = append(d.keys, companyKey{ref: ref, key: key})
		}
	}
	sort.Slice(d.keys, func(i, j int) bool {
		return d.keys[i].ref.ID.String() < d.keys[j].ref.ID.String()
	})
	return d
}

// resolve identifies the counterparty company of a transfer. The structured id
// wins; otherwise, when allowed, the name after the direction phrase is matched
// against company names. Self references and ambiguous names do not resolve.
func (d *companyDirectory) resolve(tx *entity.Transaction, direction entity.TransferDirection, cfg valueobject.MatchingConfig) (CompanyRef, bool) {
	if tx.CounterpartyCompanyID != nil {
		ref, ok := d.byID[*tx.CounterpartyCompanyID]
		if !ok || ref.ID == tx.CompanyID {
			return CompanyRef{}, false
		}
		return ref, true
	}
	if !cfg.AllowTextInference {
		return CompanyRef{}, false
	}

	name := ExtractCounterpartyName(tx.Description, direction)
	if name == "" {
		return CompanyRef{}, false
	}
	ref, ok := d.matchName(CompanyNameKey(name))
	if !ok || ref.ID == tx.CompanyID {
		return CompanyRef{}, false
	}
	return ref, true
}

func (d *companyDirectory) matchName(key string) (CompanyRef, bool) {
	if key == "" {
		return CompanyRef{}, false
	}

	var exact []CompanyRef
	var best CompanyRef
	bestLen, bestCount := 0, 0
	for _, candidate := range d.keys {
		if candidate.key == key {
			exact = append(exact, candidate.ref)
			continue
		}
		if strings.HasPrefix(key, candidate.key+"-") {
			switch {
			case len(candidate.key) > bestLen:
				best, bestLen, bestCount = candidate.ref, len(candidate.key), 1
			case len(candidate.key) == bestLen:
				bestCount++
			}
		}
	}

	if len(exact) == 1 {
		return exact[0], true
	}
	if len(exact) == 0 && bestCount == 1 {
		return best, true
	}
	return CompanyRef{}, false
}

// ExtractCounterpartyName returns the company name following the direction
// phrase of a description, e.g. "Acme Labs" from "Wire to Acme Labs - March".
func ExtractCounterpartyName(description string, direction entity.TransferDirection) string {
	phrases := outflowPhrases
	if direction == entity.TransferDirectionInflow {
		phrases = inflowPhrases
	}

	lower := asciiLower(description)
	end, ok := findPhrase(lower, phrases)
	if !ok {
		return ""
	}

	rest := description[end:]
	restLower := lower[end:]
	cut := len(rest)
	for _, terminator := range nameTerminators {
		if idx := strings.Index(restLower, terminator); idx >= 0 && idx < cut {
			cut = idx
		}
	}
	return strings.Trim(rest[:cut], " \t.:")
}

// CompanyNameKey reduces a company name to a comparable slug without legal suffixes.
func CompanyNameKey(name string) string {
	s := slug.Make(name)
	tokens := strings.Split(s, "-")
	kept := tokens[:0]
	for i, token := range tokens {
		if token == "" || (i == 0 && token == "the" && len(tokens) > 1) {
			continue
		}
		if legalSuffixes[token] && i > 0 {
			continue
		}
		kept = append(kept, token)
	}
	if len(kept) == 0 {
		return s
	}
	return strings.Join(kept, "-")
}

// MirrorCandidate is an inflow to create in the counterparty company.
type MirrorCandidate struct {
	Outflow *entity.Transaction
	Mirror  *entity.Transaction
	From    CompanyRef
	To      CompanyRef
}

// MirrorPlan is the outcome of PlanMirrors.
type MirrorPlan struct {
	Mirrors         []MirrorCandidate
	AlreadyMirrored []*entity.Transaction
	Unresolved      []SkippedTransfer
}

// PlanMirrors proposes the counterpart inflow for every outflow that lacks one.
// An outflow counts as mirrored when an inflow carries its id as mirror marker,
// or when the counterparty already holds an unused inflow of the same amount on
// a matching date. At most one mirror is proposed per outflow.
func PlanMirrors(ledgers []entity.CompanyLedger, cfg valueobject.MatchingConfig, now time.Time) MirrorPlan {
	directory := newCompanyDirectory(ledgers)
	legs := collectTransferLegs(ledgers, directory, cfg)

	marked := map[uuid.UUID]bool{}
	used := map[uuid.UUID]bool{}
	for _, leg := range legs.inflows {
		if ref, ok := mirrorMarker(leg.tx); ok {
			marked[ref] = true
			used[leg.tx.ID] = true
		}
	}

	var plan MirrorPlan
	for _, out := range legs.outflows {
		if marked[out.tx.ID] {
			plan.AlreadyMirrored = append(plan.AlreadyMirrored, out.tx)
			continue
		}
		if out.counterparty == nil {
			plan.Unresolved = append(plan.Unresolved, SkippedTransfer{
				Transaction: out.tx,
				Reason:      "counterparty company not identified",
			})
			continue
		}
		if in := legs.findInflow(out, out.counterparty.ID, used, cfg); in != nil {
			used[in.tx.ID] = true
			plan.AlreadyMirrored = append(plan.AlreadyMirrored, out.tx)
			continue
		}

		from := directory.byID[out.tx.CompanyID]
		plan.Mirrors = append(plan.Mirrors, MirrorCandidate{
			Outflow: out.tx,
			Mirror:  NewMirrorTransaction(out.tx, from, *out.counterparty, now),
			From:    from,
			To:      *out.counterparty,
		})
	}

	for _, leg := range legs.unknown {
		plan.Unresolved = append(plan.Unresolved, SkippedTransfer{
			Transaction: leg.tx,
			Reason:      "transfer direction unknown",
		})
	}
	return plan
}

// NewMirrorTransaction builds the inflow that mirrors an outflow in the
// counterparty company. The mirror points back at the outflow through SourceRef.
func NewMirrorTransaction(outflow *entity.Transaction, from, to CompanyRef, now time.Time) *entity.Transaction {
	sourceRef := outflow.ID
	counterparty := from.ID

	return &entity.Transaction{
		ID:                    uuid.New(),
		CompanyID:             to.ID,
		Date:                  entity.DateOnly(outflow.Date),
		Type:                  entity.TransactionTypeIntercompany,
		Category:              entity.CategoryTransferIn,
		Amount:                outflow.Amount.Abs(),
		Description:           "Transfer from " + from.Name,
		AffectsCashFlow:       outflow.AffectsCashFlow,
		AffectsBalance:        outflow.AffectsBalance,
		Direction:             entity.TransferDirectionInflow,
		CounterpartyCompanyID: &counterparty,
		Source:                entity.TransactionSourceIntercompanyMirror,
		SourceRef:             &sourceRef,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
}

// MigrationReport is the outcome of MigrateTransferFields.
type MigrationReport struct {
	Changed    []TransferChange
	Unresolved []SkippedTransfer
}

// MigrateTransferFields writes text-derived direction and counterparty into the
// structured fields of legacy intercompany rows. Rows whose structured fields
// are already complete are left alone. Text inference is always used here,
// whatever cfg says.
func MigrateTransferFields(ledgers []entity.CompanyLedger, cfg valueobject.MatchingConfig) MigrationReport {
	cfg.AllowTextInference = true
	directory := newCompanyDirectory(ledgers)

	var report MigrationReport
	for _, tx := range ledgerTransfers(ledgers) {
		if tx.Direction != entity.TransferDirectionUnknown && tx.CounterpartyCompanyID != nil {
			continue
		}

		direction, signal := DetectDirection(tx, cfg)
		if direction == entity.TransferDirectionUnknown {
			report.Unresolved = append(report.Unresolved, SkippedTransfer{Transaction: tx, Reason: "transfer direction unknown"})
			continue
		}

		migrated := *tx
		migrated.Direction = direction
		if tx.CounterpartyCompanyID == nil {
			if ref, ok := directory.resolve(tx, direction, cfg); ok {
				id := ref.ID
				migrated.CounterpartyCompanyID = &id
			}
		}

		if migrated.Direction == tx.Direction && migrated.CounterpartyCompanyID == tx.CounterpartyCompanyID {
			report.Unresolved = append(report.Unresolved, SkippedTransfer{Transaction: tx, Reason: "counterparty company not identified"})
			continue
		}
		report.Changed = append(report.Changed, TransferChange{
			Before:    tx,
			After:     &migrated,
			Direction: direction,
			Signal:    signal,
		})
	}
	return report
}

// transferLeg is one side of an intercompany transfer with its resolved metadata.
type transferLeg struct {
	tx           *entity.Transaction
	direction    entity.TransferDirection
	counterparty *CompanyRef
}

type transferLegs struct {
	outflows  []*transferLeg
	inflows   []*transferLeg
	unknown   []*transferLeg
	byCompany map[uuid.UUID][]*transferLeg // inflows only
}

func collectTransferLegs(ledgers []entity.CompanyLedger, directory *companyDirectory, cfg valueobject.MatchingConfig) *transferLegs {
	legs := &transferLegs{byCompany: map[uuid.UUID][]*transferLeg{}}
	for _, tx := range ledgerTransfers(ledgers) {
		direction, _ := DetectDirection(tx, cfg)
		leg := &transferLeg{tx: tx, direction: direction}
		if direction != entity.TransferDirectionUnknown {
			if ref, ok := directory.resolve(tx, direction, cfg); ok {
				leg.counterparty = &ref
			}
		}

		switch direction {
		case entity.TransferDirectionOutflow:
			legs.outflows = append(legs.outflows, leg)
		case entity.TransferDirectionInflow:
			legs.inflows = append(legs.inflows, leg)
			legs.byCompany[tx.CompanyID] = append(legs.byCompany[tx.CompanyID], leg)
		default:
			legs.unknown = append(legs.unknown, leg)
		}
	}
	return legs
}

// findInflow returns the first unused inflow of company that can be the
// counterpart of out: same absolute amount, date within tolerance, and not
// attributed to a different sender.
func (l *transferLegs) findInflow(out *transferLeg, company uuid.UUID, used map[uuid.UUID]bool, cfg valueobject.MatchingConfig) *transferLeg {
	for _, in := range l.byCompany[company] {
		if used[in.tx.ID] || in.tx.CompanyID == out.tx.CompanyID {
			continue
		}
		if !in.tx.Amount.Abs().Equal(out.tx.Amount.Abs()) {
			continue
		}
		if !withinDays(in.tx.Date, out.tx.Date, cfg.MatchDateToleranceDays) {
			continue
		}
		if in.counterparty != nil && in.counterparty.ID != out.tx.CompanyID {
			continue
		}
		return in
	}
	return nil
}

// ledgerTransfers returns every intercompany row across ledgers ordered by
// (company id, date, id).
func ledgerTransfers(ledgers []entity.CompanyLedger) []*entity.Transaction {
	var transfers []*entity.Transaction
	for _, ledger := range ledgers {
		for _, tx := range ledger.Transactions {
			if tx != nil && tx.Type.IsIntercompany() {
				transfers = append(transfers, tx)
			}
		}
	}
	sort.SliceStable(transfers, func(i, j int) bool {
		a, b := transfers[i], transfers[j]
		if a.CompanyID != b.CompanyID {
			return a.CompanyID.String() < b.CompanyID.String()
		}
		return transactionLess(a, b)
	})
	return transfers
}

func mirrorMarker(tx *entity.Transaction) (uuid.UUID, bool) {
	if tx.Source != entity.TransactionSourceIntercompanyMirror || tx.SourceRef == nil {
		return uuid.Nil, false
	}
	return *tx.SourceRef, true
}

func withinDays(a, b time.Time, days int) bool {
	diff := entity.DateOnly(a).Sub(entity.DateOnly(b))
	if diff < 0 {
		diff = -diff
	}
	return diff <= time.Duration(days)*24*time.Hour
}

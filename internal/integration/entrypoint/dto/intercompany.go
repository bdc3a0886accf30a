package dto

import (
	"github.com/ventureboard/backend/internal/application/usecase/intercompany"
)

// MaintenanceRequest represents the body of an intercompany maintenance call.
// Without apply the pass only reports what it would change.
type MaintenanceRequest struct {
	Apply bool `json:"apply"`
}

// TransferChangeResponse represents one rewritten intercompany row.
type TransferChangeResponse struct {
	TransactionID         string  `json:"transaction_id"`
	CompanyID             string  `json:"company_id"`
	Date                  string  `json:"date"`
	Description           string  `json:"description"`
	Direction             string  `json:"direction"`
	Signal                string  `json:"signal,omitempty"`
	CategoryBefore        string  `json:"category_before"`
	CategoryAfter         string  `json:"category_after"`
	AmountBefore          string  `json:"amount_before"`
	AmountAfter           string  `json:"amount_after"`
	CounterpartyCompanyID *string `json:"counterparty_company_id,omitempty"`
}

// SkippedTransferResponse represents a row a maintenance pass left alone.
type SkippedTransferResponse struct {
	TransactionID string `json:"transaction_id"`
	CompanyID     string `json:"company_id"`
	Date          string `json:"date"`
	Amount        string `json:"amount"`
	Description   string `json:"description"`
	Reason        string `json:"reason"`
}

// NormalizeResponse represents the outcome of a normalization pass.
type NormalizeResponse struct {
	CompanyID string                    `json:"company_id"`
	Applied   bool                      `json:"applied"`
	Changed   []TransferChangeResponse  `json:"changed"`
	Unknown   []SkippedTransferResponse `json:"unknown"`
	Unchanged int                       `json:"unchanged"`
}

// DuplicateGroupResponse represents one group of identical transfers.
type DuplicateGroupResponse struct {
	Key          string   `json:"key"`
	KeptID       string   `json:"kept_id"`
	DuplicateIDs []string `json:"duplicate_ids"`
}

// DeduplicateResponse represents the outcome of a deduplication pass.
type DeduplicateResponse struct {
	CompanyID string                   `json:"company_id"`
	Applied   bool                     `json:"applied"`
	Groups    []DuplicateGroupResponse `json:"groups"`
	Removed   int64                    `json:"removed"`
}

// MirrorResponse represents one planned or created mirror inflow.
type MirrorResponse struct {
	OutflowID     string `json:"outflow_id"`
	MirrorID      string `json:"mirror_id"`
	FromCompanyID string `json:"from_company_id"`
	ToCompanyID   string `json:"to_company_id"`
	Date          string `json:"date"`
	Amount        string `json:"amount"`
	Description   string `json:"description"`
}

// MirrorTransfersResponse represents the outcome of a mirroring pass.
type MirrorTransfersResponse struct {
	Applied         bool                      `json:"applied"`
	Mirrors         []MirrorResponse          `json:"mirrors"`
	AlreadyMirrored int                       `json:"already_mirrored"`
	Unresolved      []SkippedTransferResponse `json:"unresolved"`
}

// MigrateResponse represents the outcome of the structured field migration.
type MigrateResponse struct {
	CompanyID  string                    `json:"company_id"`
	Applied    bool                      `json:"applied"`
	Changed    []TransferChangeResponse  `json:"changed"`
	Unresolved []SkippedTransferResponse `json:"unresolved"`
}

func toTransferChanges(changes []intercompany.ChangeOutput) []TransferChangeResponse {
	response := make([]TransferChangeResponse, len(changes))
	for i, c := range changes {
		response[i] = TransferChangeResponse{
			TransactionID:         c.TransactionID.String(),
			CompanyID:             c.CompanyID.String(),
			Date:                  c.Date.Format(DateLayout),
			Description:           c.Description,
			Direction:             string(c.Direction),
			Signal:                string(c.Signal),
			CategoryBefore:        c.CategoryBefore,
			CategoryAfter:         c.CategoryAfter,
			AmountBefore:          c.AmountBefore.String(),
			AmountAfter:           c.AmountAfter.String(),
			CounterpartyCompanyID: formatOptionalUUID(c.CounterpartyCompanyID),
		}
	}
	return response
}

func toSkippedTransfers(skipped []intercompany.SkippedOutput) []SkippedTransferResponse {
	response := make([]SkippedTransferResponse, len(skipped))
	for i, s := range skipped {
		response[i] = SkippedTransferResponse{
			TransactionID: s.TransactionID.String(),
			CompanyID:     s.CompanyID.String(),
			Date:          s.Date.Format(DateLayout),
			Amount:        s.Amount.String(),
			Description:   s.Description,
			Reason:        s.Reason,
		}
	}
	return response
}

// ToNormalizeResponse converts a NormalizeTransfersOutput to a NormalizeResponse DTO.
func ToNormalizeResponse(output *intercompany.NormalizeTransfersOutput) NormalizeResponse {
	return NormalizeResponse{
		CompanyID: output.CompanyID.String(),
		Applied:   output.Applied,
		Changed:   toTransferChanges(output.Changed),
		Unknown:   toSkippedTransfers(output.Unknown),
		Unchanged: output.Unchanged,
	}
}

// ToDeduplicateResponse converts a DeduplicateTransfersOutput to a DeduplicateResponse DTO.
func ToDeduplicateResponse(output *intercompany.DeduplicateTransfersOutput) DeduplicateResponse {
	groups := make([]DuplicateGroupResponse, len(output.Groups))
	for i, g := range output.Groups {
		ids := make([]string, len(g.DuplicateIDs))
		for j, id := range g.DuplicateIDs {
			ids[j] = id.String()
		}
		groups[i] = DuplicateGroupResponse{Key: g.Key, KeptID: g.KeptID.String(), DuplicateIDs: ids}
	}
	return DeduplicateResponse{
		CompanyID: output.CompanyID.String(),
		Applied:   output.Applied,
		Groups:    groups,
		Removed:   output.Removed,
	}
}

// ToMirrorTransfersResponse converts a MirrorTransfersOutput to a MirrorTransfersResponse DTO.
func ToMirrorTransfersResponse(output *intercompany.MirrorTransfersOutput) MirrorTransfersResponse {
	mirrors := make([]MirrorResponse, len(output.Mirrors))
	for i, m := range output.Mirrors {
		mirrors[i] = MirrorResponse{
			OutflowID:     m.OutflowID.String(),
			MirrorID:      m.MirrorID.String(),
			FromCompanyID: m.FromCompanyID.String(),
			ToCompanyID:   m.ToCompanyID.String(),
			Date:          m.Date.Format(DateLayout),
			Amount:        m.Amount.String(),
			Description:   m.Description,
		}
	}
	return MirrorTransfersResponse{
		Applied:         output.Applied,
		Mirrors:         mirrors,
		AlreadyMirrored: output.AlreadyMirrored,
		Unresolved:      toSkippedTransfers(output.Unresolved),
	}
}

// ToMigrateResponse converts a MigrateTransferFieldsOutput to a MigrateResponse DTO.
func ToMigrateResponse(output *intercompany.MigrateTransferFieldsOutput) MigrateResponse {
	return MigrateResponse{
		CompanyID:  output.CompanyID.String(),
		Applied:    output.Applied,
		Changed:    toTransferChanges(output.Changed),
		Unresolved: toSkippedTransfers(output.Unresolved),
	}
}

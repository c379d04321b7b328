package grpc

import (
	"github.com/dmitrijs2005/verischol/internal/api"
	"github.com/dmitrijs2005/verischol/internal/server/ledger"
	"github.com/dmitrijs2005/verischol/internal/server/models"
)

func toPrincipal(p *models.Principal) api.Principal {
	return api.Principal{
		ID:        p.ID,
		Username:  p.Username,
		Email:     p.Email,
		Role:      p.Role.String(),
		PublicKey: p.PublicKey,
		CreatedAt: p.CreatedAt,
	}
}

func toProject(p *models.Project) api.Project {
	return api.Project{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		CreatedBy:   p.CreatedBy,
		CreatedAt:   p.CreatedAt,
	}
}

func toRecord(r *models.SealedRecord) api.Record {
	return api.Record{
		ID:             r.ID,
		ProjectID:      r.ProjectID,
		ProducerID:     r.ProducerID,
		RecipientID:    r.RecipientID,
		Title:          r.Title,
		Description:    r.Description,
		Ciphertext:     r.Ciphertext,
		IV:             r.IV,
		AuthTag:        r.AuthTag,
		WrappedKey:     r.WrappedKey,
		Digest:         r.Digest,
		Status:         string(r.Status),
		LastVerifiedBy: deref(r.LastVerifiedBy),
		LastVerifiedAt: r.LastVerifiedAt,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

func toVerdict(v *ledger.Verdict) api.Verdict {
	return api.Verdict{
		RecordID:      v.RecordID,
		Status:        string(v.Status),
		StoredDigest:  v.StoredDigest,
		CurrentDigest: v.CurrentDigest,
		Match:         v.Match(),
		VerifiedBy:    v.VerifiedBy,
		VerifiedAt:    v.VerifiedAt,
	}
}

func toAuditEntry(e *models.AuditEntry) api.AuditEntry {
	out := api.AuditEntry{
		ID:         e.ID,
		RecordID:   e.RecordID,
		ActorID:    deref(e.ActorID),
		Action:     string(e.Action),
		Result:     e.Result,
		Details:    e.Details,
		VerifiedBy: deref(e.VerifiedBy),
		VerifiedAt: e.VerifiedAt,
		CreatedAt:  e.CreatedAt,
	}
	if e.VerificationStatus != nil {
		out.VerificationStatus = string(*e.VerificationStatus)
	}
	return out
}

func toSystemStats(s *models.SystemStats) api.SystemStats {
	return api.SystemStats{
		Principals:       s.Principals,
		Producers:        s.Producers,
		Verifiers:        s.Verifiers,
		Administrators:   s.Administrators,
		Projects:         s.Projects,
		Records:          s.Records,
		PendingRecords:   s.PendingRecords,
		VerifiedRecords:  s.VerifiedRecords,
		CorruptedRecords: s.CorruptedRecords,
		AuditEntries:     s.AuditEntries,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

package grpc

import (
	"context"

	"github.com/dmitrijs2005/verischol/internal/api"
	"github.com/dmitrijs2005/verischol/internal/server/access"
	"github.com/dmitrijs2005/verischol/internal/server/services"
)

func (s *GRPCServer) Ping(ctx context.Context, req *api.PingRequest) (*api.PingResponse, error) {
	return &api.PingResponse{Status: "OK"}, nil
}

func (s *GRPCServer) Register(ctx context.Context, req *api.RegisterRequest) (*api.RegisterResponse, error) {

	role, err := access.ParseRole(req.Role)
	if err != nil {
		return nil, toStatus(err)
	}

	p, err := s.identity.Register(ctx, req.Username, req.Email, req.Password, role)
	if err != nil {
		s.logger.Warn(ctx, "registration failed", "error", err.Error())
		return nil, toStatus(err)
	}

	return &api.RegisterResponse{Principal: toPrincipal(p)}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *api.LoginRequest) (*api.LoginResponse, error) {

	ch, err := s.identity.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, toStatus(err)
	}

	return &api.LoginResponse{
		PrincipalID: ch.PrincipalID,
		SentTo:      ch.SentTo,
		ExpiresAt:   ch.ExpiresAt,
		DemoCode:    ch.DemoCode,
	}, nil
}

func (s *GRPCServer) VerifyOTP(ctx context.Context, req *api.VerifyOTPRequest) (*api.VerifyOTPResponse, error) {

	token, p, err := s.identity.VerifyOTP(ctx, req.PrincipalID, req.Code)
	if err != nil {
		return nil, toStatus(err)
	}

	return &api.VerifyOTPResponse{AccessToken: token, Principal: toPrincipal(p)}, nil
}

func (s *GRPCServer) Profile(ctx context.Context, req *api.ProfileRequest) (*api.ProfileResponse, error) {
	id, err := identityFrom(ctx)
	if err != nil {
		return nil, err
	}
	p, err := s.identity.Profile(ctx, id)
	if err != nil {
		return nil, toStatus(err)
	}
	return &api.ProfileResponse{Principal: toPrincipal(p)}, nil
}

func (s *GRPCServer) ChangePassword(ctx context.Context, req *api.ChangePasswordRequest) (*api.ChangePasswordResponse, error) {
	id, err := identityFrom(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.identity.ChangePassword(ctx, id, req.OldPassword, req.NewPassword); err != nil {
		return nil, toStatus(err)
	}
	return &api.ChangePasswordResponse{}, nil
}

func (s *GRPCServer) ListPrincipals(ctx context.Context, req *api.ListPrincipalsRequest) (*api.ListPrincipalsResponse, error) {
	id, err := identityFrom(ctx)
	if err != nil {
		return nil, err
	}
	list, err := s.identity.ListPrincipals(ctx, id)
	if err != nil {
		return nil, toStatus(err)
	}
	resp := &api.ListPrincipalsResponse{Principals: make([]api.Principal, 0, len(list))}
	for _, p := range list {
		resp.Principals = append(resp.Principals, toPrincipal(p))
	}
	return resp, nil
}

func (s *GRPCServer) ChangeRole(ctx context.Context, req *api.ChangeRoleRequest) (*api.ChangeRoleResponse, error) {
	id, err := identityFrom(ctx)
	if err != nil {
		return nil, err
	}
	role, err := access.ParseRole(req.Role)
	if err != nil {
		return nil, toStatus(err)
	}
	if err := s.identity.ChangeRole(ctx, id, req.PrincipalID, role); err != nil {
		return nil, toStatus(err)
	}
	return &api.ChangeRoleResponse{}, nil
}

func (s *GRPCServer) CreateProject(ctx context.Context, req *api.CreateProjectRequest) (*api.ProjectResponse, error) {
	id, err := identityFrom(ctx)
	if err != nil {
		return nil, err
	}
	p, err := s.projects.Create(ctx, id, req.Name, req.Description)
	if err != nil {
		return nil, toStatus(err)
	}
	return &api.ProjectResponse{Project: toProject(p)}, nil
}

func (s *GRPCServer) AssignToProject(ctx context.Context, req *api.AssignToProjectRequest) (*api.AssignToProjectResponse, error) {
	id, err := identityFrom(ctx)
	if err != nil {
		return nil, err
	}
	role, err := access.ParseRole(req.Role)
	if err != nil {
		return nil, toStatus(err)
	}
	if err := s.projects.Assign(ctx, id, req.ProjectID, req.PrincipalID, role); err != nil {
		return nil, toStatus(err)
	}
	return &api.AssignToProjectResponse{}, nil
}

func (s *GRPCServer) ListProjects(ctx context.Context, req *api.ListProjectsRequest) (*api.ListProjectsResponse, error) {
	id, err := identityFrom(ctx)
	if err != nil {
		return nil, err
	}
	list, err := s.projects.ListMine(ctx, id)
	if err != nil {
		return nil, toStatus(err)
	}
	resp := &api.ListProjectsResponse{Projects: make([]api.Project, 0, len(list))}
	for _, p := range list {
		resp.Projects = append(resp.Projects, toProject(p))
	}
	return resp, nil
}

func (s *GRPCServer) GetProject(ctx context.Context, req *api.GetProjectRequest) (*api.ProjectResponse, error) {
	id, err := identityFrom(ctx)
	if err != nil {
		return nil, err
	}
	p, err := s.projects.Get(ctx, id, req.ProjectID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &api.ProjectResponse{Project: toProject(p)}, nil
}

func (s *GRPCServer) UploadRecord(ctx context.Context, req *api.UploadRecordRequest) (*api.RecordResponse, error) {
	id, err := identityFrom(ctx)
	if err != nil {
		return nil, err
	}
	rec, err := s.records.Upload(ctx, id, req.ProjectID, services.RecordContent{
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return &api.RecordResponse{Record: toRecord(rec)}, nil
}

func (s *GRPCServer) UpdateRecord(ctx context.Context, req *api.UpdateRecordRequest) (*api.RecordResponse, error) {
	id, err := identityFrom(ctx)
	if err != nil {
		return nil, err
	}
	rec, err := s.records.Update(ctx, id, req.RecordID, services.RecordContent{
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return &api.RecordResponse{Record: toRecord(rec)}, nil
}

func (s *GRPCServer) GetRecord(ctx context.Context, req *api.GetRecordRequest) (*api.RecordResponse, error) {
	id, err := identityFrom(ctx)
	if err != nil {
		return nil, err
	}
	rec, err := s.records.Get(ctx, id, req.RecordID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &api.RecordResponse{Record: toRecord(rec)}, nil
}

func (s *GRPCServer) ListRecords(ctx context.Context, req *api.ListRecordsRequest) (*api.ListRecordsResponse, error) {
	id, err := identityFrom(ctx)
	if err != nil {
		return nil, err
	}
	list, err := s.records.List(ctx, id, req.ProjectID)
	if err != nil {
		return nil, toStatus(err)
	}
	resp := &api.ListRecordsResponse{Records: make([]api.Record, 0, len(list))}
	for _, r := range list {
		resp.Records = append(resp.Records, toRecord(r))
	}
	return resp, nil
}

func (s *GRPCServer) ReadRecord(ctx context.Context, req *api.ReadRecordRequest) (*api.ReadRecordResponse, error) {
	id, err := identityFrom(ctx)
	if err != nil {
		return nil, err
	}
	content, err := s.records.Read(ctx, id, req.RecordID, req.Password)
	if err != nil {
		return nil, toStatus(err)
	}
	return &api.ReadRecordResponse{Content: content}, nil
}

func (s *GRPCServer) VerifyRecord(ctx context.Context, req *api.VerifyRecordRequest) (*api.VerifyRecordResponse, error) {
	id, err := identityFrom(ctx)
	if err != nil {
		return nil, err
	}
	v, err := s.records.Verify(ctx, id, req.RecordID, req.Password)
	if err != nil {
		return nil, toStatus(err)
	}
	return &api.VerifyRecordResponse{Verdict: toVerdict(v)}, nil
}

func (s *GRPCServer) SimulateAttack(ctx context.Context, req *api.SimulateAttackRequest) (*api.SimulateAttackResponse, error) {
	id, err := identityFrom(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.records.SimulateAttack(ctx, id, req.RecordID); err != nil {
		return nil, toStatus(err)
	}
	return &api.SimulateAttackResponse{}, nil
}

func (s *GRPCServer) DeleteRecord(ctx context.Context, req *api.DeleteRecordRequest) (*api.DeleteRecordResponse, error) {
	id, err := identityFrom(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.records.Delete(ctx, id, req.RecordID); err != nil {
		return nil, toStatus(err)
	}
	return &api.DeleteRecordResponse{}, nil
}

func (s *GRPCServer) AuditTrail(ctx context.Context, req *api.AuditTrailRequest) (*api.AuditTrailResponse, error) {
	id, err := identityFrom(ctx)
	if err != nil {
		return nil, err
	}
	entries, err := s.records.AuditTrail(ctx, id, req.RecordID)
	if err != nil {
		return nil, toStatus(err)
	}
	resp := &api.AuditTrailResponse{Entries: make([]api.AuditEntry, 0, len(entries))}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, toAuditEntry(e))
	}
	return resp, nil
}

func (s *GRPCServer) ListAuditLog(ctx context.Context, req *api.ListAuditLogRequest) (*api.ListAuditLogResponse, error) {
	id, err := identityFrom(ctx)
	if err != nil {
		return nil, err
	}
	entries, err := s.records.ProjectAuditLog(ctx, id, req.ProjectID)
	if err != nil {
		return nil, toStatus(err)
	}
	resp := &api.ListAuditLogResponse{Entries: make([]api.AuditEntry, 0, len(entries))}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, toAuditEntry(e))
	}
	return resp, nil
}

func (s *GRPCServer) SystemStats(ctx context.Context, _ *api.SystemStatsRequest) (*api.SystemStatsResponse, error) {
	id, err := identityFrom(ctx)
	if err != nil {
		return nil, err
	}
	st, err := s.reports.SystemStats(ctx, id)
	if err != nil {
		return nil, toStatus(err)
	}
	return &api.SystemStatsResponse{Stats: toSystemStats(st)}, nil
}

func (s *GRPCServer) ExportReport(ctx context.Context, req *api.ExportReportRequest) (*api.ExportReportResponse, error) {
	id, err := identityFrom(ctx)
	if err != nil {
		return nil, err
	}
	out, err := s.reports.ExportProjectReport(ctx, id, req.ProjectID)
	if err != nil {
		s.logger.Error(ctx, "report export failed", "project_id", req.ProjectID, "error", err.Error())
		return nil, toStatus(err)
	}
	return &api.ExportReportResponse{Key: out.Key, URL: out.URL, ExpiresAt: out.ExpiresAt}, nil
}

func (s *GRPCServer) ReadRetained(ctx context.Context, req *api.ReadRetainedRequest) (*api.ReadRecordResponse, error) {
	id, err := identityFrom(ctx)
	if err != nil {
		return nil, err
	}
	content, err := s.records.ReadRetained(ctx, id, req.RecordID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &api.ReadRecordResponse{Content: content}, nil
}

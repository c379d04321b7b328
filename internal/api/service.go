// Package api declares the VeriSchol gRPC service: its messages, the JSON
// codec they travel in, and the service descriptor shared by server and
// client.
package api

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "verischol.v1.VeriSchol"

// Full method names, as seen by interceptors.
const (
	MethodPing            = "/" + ServiceName + "/Ping"
	MethodRegister        = "/" + ServiceName + "/Register"
	MethodLogin           = "/" + ServiceName + "/Login"
	MethodVerifyOTP       = "/" + ServiceName + "/VerifyOTP"
	MethodProfile         = "/" + ServiceName + "/Profile"
	MethodChangePassword  = "/" + ServiceName + "/ChangePassword"
	MethodListPrincipals  = "/" + ServiceName + "/ListPrincipals"
	MethodChangeRole      = "/" + ServiceName + "/ChangeRole"
	MethodCreateProject   = "/" + ServiceName + "/CreateProject"
	MethodAssignToProject = "/" + ServiceName + "/AssignToProject"
	MethodListProjects    = "/" + ServiceName + "/ListProjects"
	MethodGetProject      = "/" + ServiceName + "/GetProject"
	MethodUploadRecord    = "/" + ServiceName + "/UploadRecord"
	MethodUpdateRecord    = "/" + ServiceName + "/UpdateRecord"
	MethodGetRecord       = "/" + ServiceName + "/GetRecord"
	MethodListRecords     = "/" + ServiceName + "/ListRecords"
	MethodReadRecord      = "/" + ServiceName + "/ReadRecord"
	MethodVerifyRecord    = "/" + ServiceName + "/VerifyRecord"
	MethodSimulateAttack  = "/" + ServiceName + "/SimulateAttack"
	MethodDeleteRecord    = "/" + ServiceName + "/DeleteRecord"
	MethodAuditTrail      = "/" + ServiceName + "/AuditTrail"
	MethodListAuditLog    = "/" + ServiceName + "/ListAuditLog"
	MethodSystemStats     = "/" + ServiceName + "/SystemStats"
	MethodExportReport    = "/" + ServiceName + "/ExportReport"
	MethodReadRetained    = "/" + ServiceName + "/ReadRetained"
)

// VeriScholServer is implemented by the server package.
type VeriScholServer interface {
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	Register(context.Context, *RegisterRequest) (*RegisterResponse, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	VerifyOTP(context.Context, *VerifyOTPRequest) (*VerifyOTPResponse, error)
	Profile(context.Context, *ProfileRequest) (*ProfileResponse, error)
	ChangePassword(context.Context, *ChangePasswordRequest) (*ChangePasswordResponse, error)
	ListPrincipals(context.Context, *ListPrincipalsRequest) (*ListPrincipalsResponse, error)
	ChangeRole(context.Context, *ChangeRoleRequest) (*ChangeRoleResponse, error)
	CreateProject(context.Context, *CreateProjectRequest) (*ProjectResponse, error)
	AssignToProject(context.Context, *AssignToProjectRequest) (*AssignToProjectResponse, error)
	ListProjects(context.Context, *ListProjectsRequest) (*ListProjectsResponse, error)
	GetProject(context.Context, *GetProjectRequest) (*ProjectResponse, error)
	UploadRecord(context.Context, *UploadRecordRequest) (*RecordResponse, error)
	UpdateRecord(context.Context, *UpdateRecordRequest) (*RecordResponse, error)
	GetRecord(context.Context, *GetRecordRequest) (*RecordResponse, error)
	ListRecords(context.Context, *ListRecordsRequest) (*ListRecordsResponse, error)
	ReadRecord(context.Context, *ReadRecordRequest) (*ReadRecordResponse, error)
	VerifyRecord(context.Context, *VerifyRecordRequest) (*VerifyRecordResponse, error)
	SimulateAttack(context.Context, *SimulateAttackRequest) (*SimulateAttackResponse, error)
	DeleteRecord(context.Context, *DeleteRecordRequest) (*DeleteRecordResponse, error)
	AuditTrail(context.Context, *AuditTrailRequest) (*AuditTrailResponse, error)
	ListAuditLog(context.Context, *ListAuditLogRequest) (*ListAuditLogResponse, error)
	SystemStats(context.Context, *SystemStatsRequest) (*SystemStatsResponse, error)
	ExportReport(context.Context, *ExportReportRequest) (*ExportReportResponse, error)
	ReadRetained(context.Context, *ReadRetainedRequest) (*ReadRecordResponse, error)
}

// UnimplementedVeriScholServer answers every method with codes.Unimplemented.
type UnimplementedVeriScholServer struct{}

func (UnimplementedVeriScholServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Ping not implemented")
}

func (UnimplementedVeriScholServer) Register(context.Context, *RegisterRequest) (*RegisterResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Register not implemented")
}

func (UnimplementedVeriScholServer) Login(context.Context, *LoginRequest) (*LoginResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Login not implemented")
}

func (UnimplementedVeriScholServer) VerifyOTP(context.Context, *VerifyOTPRequest) (*VerifyOTPResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method VerifyOTP not implemented")
}

func (UnimplementedVeriScholServer) Profile(context.Context, *ProfileRequest) (*ProfileResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Profile not implemented")
}

func (UnimplementedVeriScholServer) ChangePassword(context.Context, *ChangePasswordRequest) (*ChangePasswordResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ChangePassword not implemented")
}

func (UnimplementedVeriScholServer) ListPrincipals(context.Context, *ListPrincipalsRequest) (*ListPrincipalsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListPrincipals not implemented")
}

func (UnimplementedVeriScholServer) ChangeRole(context.Context, *ChangeRoleRequest) (*ChangeRoleResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ChangeRole not implemented")
}

func (UnimplementedVeriScholServer) CreateProject(context.Context, *CreateProjectRequest) (*ProjectResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateProject not implemented")
}

func (UnimplementedVeriScholServer) AssignToProject(context.Context, *AssignToProjectRequest) (*AssignToProjectResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method AssignToProject not implemented")
}

func (UnimplementedVeriScholServer) ListProjects(context.Context, *ListProjectsRequest) (*ListProjectsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListProjects not implemented")
}

func (UnimplementedVeriScholServer) GetProject(context.Context, *GetProjectRequest) (*ProjectResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetProject not implemented")
}

func (UnimplementedVeriScholServer) UploadRecord(context.Context, *UploadRecordRequest) (*RecordResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UploadRecord not implemented")
}

func (UnimplementedVeriScholServer) UpdateRecord(context.Context, *UpdateRecordRequest) (*RecordResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateRecord not implemented")
}

func (UnimplementedVeriScholServer) GetRecord(context.Context, *GetRecordRequest) (*RecordResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetRecord not implemented")
}

func (UnimplementedVeriScholServer) ListRecords(context.Context, *ListRecordsRequest) (*ListRecordsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListRecords not implemented")
}

func (UnimplementedVeriScholServer) ReadRecord(context.Context, *ReadRecordRequest) (*ReadRecordResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ReadRecord not implemented")
}

func (UnimplementedVeriScholServer) VerifyRecord(context.Context, *VerifyRecordRequest) (*VerifyRecordResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method VerifyRecord not implemented")
}

func (UnimplementedVeriScholServer) SimulateAttack(context.Context, *SimulateAttackRequest) (*SimulateAttackResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SimulateAttack not implemented")
}

func (UnimplementedVeriScholServer) DeleteRecord(context.Context, *DeleteRecordRequest) (*DeleteRecordResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteRecord not implemented")
}

func (UnimplementedVeriScholServer) AuditTrail(context.Context, *AuditTrailRequest) (*AuditTrailResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method AuditTrail not implemented")
}

func (UnimplementedVeriScholServer) ListAuditLog(context.Context, *ListAuditLogRequest) (*ListAuditLogResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListAuditLog not implemented")
}

func (UnimplementedVeriScholServer) SystemStats(context.Context, *SystemStatsRequest) (*SystemStatsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SystemStats not implemented")
}

func (UnimplementedVeriScholServer) ExportReport(context.Context, *ExportReportRequest) (*ExportReportResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ExportReport not implemented")
}

func (UnimplementedVeriScholServer) ReadRetained(context.Context, *ReadRetainedRequest) (*ReadRecordResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ReadRetained not implemented")
}

func RegisterVeriScholServer(s grpc.ServiceRegistrar, srv VeriScholServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func _VeriSchol_Ping_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(PingRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(VeriScholServer).Ping(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodPing}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(VeriScholServer).Ping(ctx, req.(*PingRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _VeriSchol_Register_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(RegisterRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(VeriScholServer).Register(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodRegister}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(VeriScholServer).Register(ctx, req.(*RegisterRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _VeriSchol_Login_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(LoginRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(VeriScholServer).Login(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodLogin}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(VeriScholServer).Login(ctx, req.(*LoginRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _VeriSchol_VerifyOTP_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(VerifyOTPRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(VeriScholServer).VerifyOTP(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodVerifyOTP}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(VeriScholServer).VerifyOTP(ctx, req.(*VerifyOTPRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _VeriSchol_Profile_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ProfileRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(VeriScholServer).Profile(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodProfile}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(VeriScholServer).Profile(ctx, req.(*ProfileRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _VeriSchol_ChangePassword_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ChangePasswordRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(VeriScholServer).ChangePassword(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodChangePassword}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(VeriScholServer).ChangePassword(ctx, req.(*ChangePasswordRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _VeriSchol_ListPrincipals_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ListPrincipalsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(VeriScholServer).ListPrincipals(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodListPrincipals}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(VeriScholServer).ListPrincipals(ctx, req.(*ListPrincipalsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _VeriSchol_ChangeRole_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ChangeRoleRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(VeriScholServer).ChangeRole(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodChangeRole}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(VeriScholServer).ChangeRole(ctx, req.(*ChangeRoleRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _VeriSchol_CreateProject_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(CreateProjectRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(VeriScholServer).CreateProject(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodCreateProject}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(VeriScholServer).CreateProject(ctx, req.(*CreateProjectRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _VeriSchol_AssignToProject_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(AssignToProjectRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(VeriScholServer).AssignToProject(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodAssignToProject}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(VeriScholServer).AssignToProject(ctx, req.(*AssignToProjectRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _VeriSchol_ListProjects_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ListProjectsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(VeriScholServer).ListProjects(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodListProjects}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(VeriScholServer).ListProjects(ctx, req.(*ListProjectsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _VeriSchol_GetProject_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GetProjectRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(VeriScholServer).GetProject(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodGetProject}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(VeriScholServer).GetProject(ctx, req.(*GetProjectRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _VeriSchol_UploadRecord_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(UploadRecordRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(VeriScholServer).UploadRecord(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodUploadRecord}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(VeriScholServer).UploadRecord(ctx, req.(*UploadRecordRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _VeriSchol_UpdateRecord_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(UpdateRecordRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(VeriScholServer).UpdateRecord(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodUpdateRecord}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(VeriScholServer).UpdateRecord(ctx, req.(*UpdateRecordRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _VeriSchol_GetRecord_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GetRecordRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(VeriScholServer).GetRecord(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodGetRecord}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(VeriScholServer).GetRecord(ctx, req.(*GetRecordRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _VeriSchol_ListRecords_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ListRecordsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(VeriScholServer).ListRecords(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodListRecords}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(VeriScholServer).ListRecords(ctx, req.(*ListRecordsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _VeriSchol_ReadRecord_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ReadRecordRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(VeriScholServer).ReadRecord(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodReadRecord}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(VeriScholServer).ReadRecord(ctx, req.(*ReadRecordRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _VeriSchol_VerifyRecord_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(VerifyRecordRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(VeriScholServer).VerifyRecord(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodVerifyRecord}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(VeriScholServer).VerifyRecord(ctx, req.(*VerifyRecordRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _VeriSchol_SimulateAttack_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(SimulateAttackRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(VeriScholServer).SimulateAttack(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodSimulateAttack}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(VeriScholServer).SimulateAttack(ctx, req.(*SimulateAttackRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _VeriSchol_DeleteRecord_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(DeleteRecordRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(VeriScholServer).DeleteRecord(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodDeleteRecord}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(VeriScholServer).DeleteRecord(ctx, req.(*DeleteRecordRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _VeriSchol_AuditTrail_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(AuditTrailRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(VeriScholServer).AuditTrail(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodAuditTrail}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(VeriScholServer).AuditTrail(ctx, req.(*AuditTrailRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _VeriSchol_ListAuditLog_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ListAuditLogRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(VeriScholServer).ListAuditLog(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodListAuditLog}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(VeriScholServer).ListAuditLog(ctx, req.(*ListAuditLogRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _VeriSchol_SystemStats_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(SystemStatsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(VeriScholServer).SystemStats(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodSystemStats}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(VeriScholServer).SystemStats(ctx, req.(*SystemStatsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _VeriSchol_ExportReport_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ExportReportRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(VeriScholServer).ExportReport(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodExportReport}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(VeriScholServer).ExportReport(ctx, req.(*ExportReportRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _VeriSchol_ReadRetained_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ReadRetainedRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(VeriScholServer).ReadRetained(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodReadRetained}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(VeriScholServer).ReadRetained(ctx, req.(*ReadRetainedRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// ServiceDesc describes the service for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*VeriScholServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Ping", Handler: _VeriSchol_Ping_Handler},
		{MethodName: "Register", Handler: _VeriSchol_Register_Handler},
		{MethodName: "Login", Handler: _VeriSchol_Login_Handler},
		{MethodName: "VerifyOTP", Handler: _VeriSchol_VerifyOTP_Handler},
		{MethodName: "Profile", Handler: _VeriSchol_Profile_Handler},
		{MethodName: "ChangePassword", Handler: _VeriSchol_ChangePassword_Handler},
		{MethodName: "ListPrincipals", Handler: _VeriSchol_ListPrincipals_Handler},
		{MethodName: "ChangeRole", Handler: _VeriSchol_ChangeRole_Handler},
		{MethodName: "CreateProject", Handler: _VeriSchol_CreateProject_Handler},
		{MethodName: "AssignToProject", Handler: _VeriSchol_AssignToProject_Handler},
		{MethodName: "ListProjects", Handler: _VeriSchol_ListProjects_Handler},
		{MethodName: "GetProject", Handler: _VeriSchol_GetProject_Handler},
		{MethodName: "UploadRecord", Handler: _VeriSchol_UploadRecord_Handler},
		{MethodName: "UpdateRecord", Handler: _VeriSchol_UpdateRecord_Handler},
		{MethodName: "GetRecord", Handler: _VeriSchol_GetRecord_Handler},
		{MethodName: "ListRecords", Handler: _VeriSchol_ListRecords_Handler},
		{MethodName: "ReadRecord", Handler: _VeriSchol_ReadRecord_Handler},
		{MethodName: "VerifyRecord", Handler: _VeriSchol_VerifyRecord_Handler},
		{MethodName: "SimulateAttack", Handler: _VeriSchol_SimulateAttack_Handler},
		{MethodName: "DeleteRecord", Handler: _VeriSchol_DeleteRecord_Handler},
		{MethodName: "AuditTrail", Handler: _VeriSchol_AuditTrail_Handler},
		{MethodName: "ListAuditLog", Handler: _VeriSchol_ListAuditLog_Handler},
		{MethodName: "SystemStats", Handler: _VeriSchol_SystemStats_Handler},
		{MethodName: "ExportReport", Handler: _VeriSchol_ExportReport_Handler},
		{MethodName: "ReadRetained", Handler: _VeriSchol_ReadRetained_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "verischol.v1",
}

// VeriScholClient is the client side of the service. Calls default to the
// JSON content-subtype.
type VeriScholClient interface {
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
	Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error)
	Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error)
	VerifyOTP(ctx context.Context, in *VerifyOTPRequest, opts ...grpc.CallOption) (*VerifyOTPResponse, error)
	Profile(ctx context.Context, in *ProfileRequest, opts ...grpc.CallOption) (*ProfileResponse, error)
	ChangePassword(ctx context.Context, in *ChangePasswordRequest, opts ...grpc.CallOption) (*ChangePasswordResponse, error)
	ListPrincipals(ctx context.Context, in *ListPrincipalsRequest, opts ...grpc.CallOption) (*ListPrincipalsResponse, error)
	ChangeRole(ctx context.Context, in *ChangeRoleRequest, opts ...grpc.CallOption) (*ChangeRoleResponse, error)
	CreateProject(ctx context.Context, in *CreateProjectRequest, opts ...grpc.CallOption) (*ProjectResponse, error)
	AssignToProject(ctx context.Context, in *AssignToProjectRequest, opts ...grpc.CallOption) (*AssignToProjectResponse, error)
	ListProjects(ctx context.Context, in *ListProjectsRequest, opts ...grpc.CallOption) (*ListProjectsResponse, error)
	GetProject(ctx context.Context, in *GetProjectRequest, opts ...grpc.CallOption) (*ProjectResponse, error)
	UploadRecord(ctx context.Context, in *UploadRecordRequest, opts ...grpc.CallOption) (*RecordResponse, error)
	UpdateRecord(ctx context.Context, in *UpdateRecordRequest, opts ...grpc.CallOption) (*RecordResponse, error)
	GetRecord(ctx context.Context, in *GetRecordRequest, opts ...grpc.CallOption) (*RecordResponse, error)
	ListRecords(ctx context.Context, in *ListRecordsRequest, opts ...grpc.CallOption) (*ListRecordsResponse, error)
	ReadRecord(ctx context.Context, in *ReadRecordRequest, opts ...grpc.CallOption) (*ReadRecordResponse, error)
	VerifyRecord(ctx context.Context, in *VerifyRecordRequest, opts ...grpc.CallOption) (*VerifyRecordResponse, error)
	SimulateAttack(ctx context.Context, in *SimulateAttackRequest, opts ...grpc.CallOption) (*SimulateAttackResponse, error)
	DeleteRecord(ctx context.Context, in *DeleteRecordRequest, opts ...grpc.CallOption) (*DeleteRecordResponse, error)
	AuditTrail(ctx context.Context, in *AuditTrailRequest, opts ...grpc.CallOption) (*AuditTrailResponse, error)
	ListAuditLog(ctx context.Context, in *ListAuditLogRequest, opts ...grpc.CallOption) (*ListAuditLogResponse, error)
	SystemStats(ctx context.Context, in *SystemStatsRequest, opts ...grpc.CallOption) (*SystemStatsResponse, error)
	ExportReport(ctx context.Context, in *ExportReportRequest, opts ...grpc.CallOption) (*ExportReportResponse, error)
	ReadRetained(ctx context.Context, in *ReadRetainedRequest, opts ...grpc.CallOption) (*ReadRecordResponse, error)
}

type veriScholClient struct {
	cc grpc.ClientConnInterface
}

func NewVeriScholClient(cc grpc.ClientConnInterface) VeriScholClient {
	return &veriScholClient{cc: cc}
}

func (c *veriScholClient) invoke(ctx context.Context, method string, in, out any, opts []grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	return c.cc.Invoke(ctx, method, in, out, opts...)
}

func (c *veriScholClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	out := new(PingResponse)
	if err := c.invoke(ctx, MethodPing, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *veriScholClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error) {
	out := new(RegisterResponse)
	if err := c.invoke(ctx, MethodRegister, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *veriScholClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	out := new(LoginResponse)
	if err := c.invoke(ctx, MethodLogin, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *veriScholClient) VerifyOTP(ctx context.Context, in *VerifyOTPRequest, opts ...grpc.CallOption) (*VerifyOTPResponse, error) {
	out := new(VerifyOTPResponse)
	if err := c.invoke(ctx, MethodVerifyOTP, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *veriScholClient) Profile(ctx context.Context, in *ProfileRequest, opts ...grpc.CallOption) (*ProfileResponse, error) {
	out := new(ProfileResponse)
	if err := c.invoke(ctx, MethodProfile, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *veriScholClient) ChangePassword(ctx context.Context, in *ChangePasswordRequest, opts ...grpc.CallOption) (*ChangePasswordResponse, error) {
	out := new(ChangePasswordResponse)
	if err := c.invoke(ctx, MethodChangePassword, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *veriScholClient) ListPrincipals(ctx context.Context, in *ListPrincipalsRequest, opts ...grpc.CallOption) (*ListPrincipalsResponse, error) {
	out := new(ListPrincipalsResponse)
	if err := c.invoke(ctx, MethodListPrincipals, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *veriScholClient) ChangeRole(ctx context.Context, in *ChangeRoleRequest, opts ...grpc.CallOption) (*ChangeRoleResponse, error) {
	out := new(ChangeRoleResponse)
	if err := c.invoke(ctx, MethodChangeRole, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *veriScholClient) CreateProject(ctx context.Context, in *CreateProjectRequest, opts ...grpc.CallOption) (*ProjectResponse, error) {
	out := new(ProjectResponse)
	if err := c.invoke(ctx, MethodCreateProject, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *veriScholClient) AssignToProject(ctx context.Context, in *AssignToProjectRequest, opts ...grpc.CallOption) (*AssignToProjectResponse, error) {
	out := new(AssignToProjectResponse)
	if err := c.invoke(ctx, MethodAssignToProject, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *veriScholClient) ListProjects(ctx context.Context, in *ListProjectsRequest, opts ...grpc.CallOption) (*ListProjectsResponse, error) {
	out := new(ListProjectsResponse)
	if err := c.invoke(ctx, MethodListProjects, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *veriScholClient) GetProject(ctx context.Context, in *GetProjectRequest, opts ...grpc.CallOption) (*ProjectResponse, error) {
	out := new(ProjectResponse)
	if err := c.invoke(ctx, MethodGetProject, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *veriScholClient) UploadRecord(ctx context.Context, in *UploadRecordRequest, opts ...grpc.CallOption) (*RecordResponse, error) {
	out := new(RecordResponse)
	if err := c.invoke(ctx, MethodUploadRecord, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *veriScholClient) UpdateRecord(ctx context.Context, in *UpdateRecordRequest, opts ...grpc.CallOption) (*RecordResponse, error) {
	out := new(RecordResponse)
	if err := c.invoke(ctx, MethodUpdateRecord, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *veriScholClient) GetRecord(ctx context.Context, in *GetRecordRequest, opts ...grpc.CallOption) (*RecordResponse, error) {
	out := new(RecordResponse)
	if err := c.invoke(ctx, MethodGetRecord, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *veriScholClient) ListRecords(ctx context.Context, in *ListRecordsRequest, opts ...grpc.CallOption) (*ListRecordsResponse, error) {
	out := new(ListRecordsResponse)
	if err := c.invoke(ctx, MethodListRecords, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *veriScholClient) ReadRecord(ctx context.Context, in *ReadRecordRequest, opts ...grpc.CallOption) (*ReadRecordResponse, error) {
	out := new(ReadRecordResponse)
	if err := c.invoke(ctx, MethodReadRecord, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *veriScholClient) VerifyRecord(ctx context.Context, in *VerifyRecordRequest, opts ...grpc.CallOption) (*VerifyRecordResponse, error) {
	out := new(VerifyRecordResponse)
	if err := c.invoke(ctx, MethodVerifyRecord, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *veriScholClient) SimulateAttack(ctx context.Context, in *SimulateAttackRequest, opts ...grpc.CallOption) (*SimulateAttackResponse, error) {
	out := new(SimulateAttackResponse)
	if err := c.invoke(ctx, MethodSimulateAttack, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *veriScholClient) DeleteRecord(ctx context.Context, in *DeleteRecordRequest, opts ...grpc.CallOption) (*DeleteRecordResponse, error) {
	out := new(DeleteRecordResponse)
	if err := c.invoke(ctx, MethodDeleteRecord, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *veriScholClient) AuditTrail(ctx context.Context, in *AuditTrailRequest, opts ...grpc.CallOption) (*AuditTrailResponse, error) {
	out := new(AuditTrailResponse)
	if err := c.invoke(ctx, MethodAuditTrail, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *veriScholClient) ListAuditLog(ctx context.Context, in *ListAuditLogRequest, opts ...grpc.CallOption) (*ListAuditLogResponse, error) {
	out := new(ListAuditLogResponse)
	if err := c.invoke(ctx, MethodListAuditLog, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *veriScholClient) SystemStats(ctx context.Context, in *SystemStatsRequest, opts ...grpc.CallOption) (*SystemStatsResponse, error) {
	out := new(SystemStatsResponse)
	if err := c.invoke(ctx, MethodSystemStats, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *veriScholClient) ExportReport(ctx context.Context, in *ExportReportRequest, opts ...grpc.CallOption) (*ExportReportResponse, error) {
	out := new(ExportReportResponse)
	if err := c.invoke(ctx, MethodExportReport, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *veriScholClient) ReadRetained(ctx context.Context, in *ReadRetainedRequest, opts ...grpc.CallOption) (*ReadRecordResponse, error) {
	out := new(ReadRecordResponse)
	if err := c.invoke(ctx, MethodReadRetained, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexpardox/mercaproject/internal/apperr"
	"github.com/alexpardox/mercaproject/internal/dto"
	"github.com/alexpardox/mercaproject/internal/infra"
	"github.com/alexpardox/mercaproject/internal/model"
	"github.com/alexpardox/mercaproject/internal/repository"

	"github.com/google/uuid"
)

type ReporteService interface {
	// Formularios builds the period report; with formato "pdf" it also writes
	// the file and returns its path (empty otherwise).
	Formularios(ctx context.Context, actor model.Actor, filtro dto.ReporteFiltro) (*dto.ReporteFormulariosResponse, string, error)
}

type reporteService struct {
	repo          repository.FormularioRepository
	proveedorRepo repository.ProveedorRepository
	storagePath   string
}

func NewReporteService(repo repository.FormularioRepository, proveedorRepo repository.ProveedorRepository, storagePath string) ReporteService {
	return &reporteService{repo: repo, proveedorRepo: proveedorRepo, storagePath: storagePath}
}

func (s *reporteService) Formularios(ctx context.Context, actor model.Actor, filtro dto.ReporteFiltro) (*dto.ReporteFormulariosResponse, string, error) {
	desde, err := time.ParseInLocation(fechaLayout, filtro.Desde, time.Local)
	if err != nil {
		return nil, "", apperr.Validation("fecha desde inválida")
	}
	hasta, err := time.ParseInLocation(fechaLayout, filtro.Hasta, time.Local)
	if err != nil {
		return nil, "", apperr.Validation("fecha hasta inválida")
	}
	if hasta.Before(desde) {
		return nil, "", apperr.Validation("el periodo está invertido")
	}
	// Periods bound creation timestamps; extend hasta to the end of its day.
	hastaFin := hasta.Add(24*time.Hour - time.Second)

	var (
		formularios []model.Formulario
		titulo      string
	)
	switch {
	case filtro.ProveedorID != "":
		pid, err := uuid.Parse(filtro.ProveedorID)
		if err != nil {
			return nil, "", apperr.Validation("proveedor inválido")
		}
		p, err := s.proveedorRepo.FindByID(ctx, pid)
		if err != nil {
			return nil, "", apperr.NotFound("proveedor no encontrado")
		}
		formularios, err = s.repo.ListByProveedorYPeriodo(ctx, pid, desde, hastaFin)
		if err != nil {
			return nil, "", err
		}
		titulo = fmt.Sprintf("Formularios de %s", p.Nombre)
	case filtro.Tienda != "":
		formularios, err = s.repo.ListByTiendaYPeriodo(ctx, filtro.Tienda, desde, hastaFin)
		if err != nil {
			return nil, "", err
		}
		titulo = fmt.Sprintf("Formularios de la tienda %s", filtro.Tienda)
	default:
		return nil, "", apperr.Validation("el reporte requiere proveedor o tienda")
	}

	resp := &dto.ReporteFormulariosResponse{
		Titulo:      titulo,
		Desde:       filtro.Desde,
		Hasta:       filtro.Hasta,
		Total:       len(formularios),
		Formularios: make([]dto.FormularioResponse, len(formularios)),
	}
	for i := range formularios {
		resp.Formularios[i] = *formularioToResponse(&formularios[i], actor)
	}

	if filtro.Formato != "pdf" {
		return resp, "", nil
	}
	path, err := infra.GenerateReportePDF(titulo, filtro.Desde, filtro.Hasta, formularios, s.storagePath)
	if err != nil {
		return nil, "", err
	}
	return resp, path, nil
}

package main

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/upk-it/helpdesk/internal/auth"
	"github.com/upk-it/helpdesk/internal/config"
	"github.com/upk-it/helpdesk/internal/domain"
	"github.com/upk-it/helpdesk/internal/observability"
	"github.com/upk-it/helpdesk/internal/persistence"
	"github.com/upk-it/helpdesk/internal/repository"
)

// Demo accounts for local development. Every account shares the same
// password.
const seedPassword = "Titan123!"

type seedUser struct {
	name  string
	email string
	role  domain.Role
	area  string
}

var seedUsers = []seedUser{
	{"Ana Ruiz", "ana@titan.com", domain.RoleRequester, "Operaciones"},
	{"Luis Pérez", "luis@titan.com", domain.RoleRequester, "Marketing"},
	{"Carla Gómez", "carla@titan.com", domain.RoleRequester, "Logística"},
	{"Jorge Díaz", "jorge@titan.com", domain.RoleRequester, "Finanzas"},
	{"Marta Ríos", "marta@titan.com", domain.RoleRequester, "Recursos Humanos"},

	{"Soporte N1", "n1@titan.com", domain.RoleResolver, "TI"},
	{"Soporte N2", "n2@titan.com", domain.RoleResolver, "TI"},

	{"Admin TI 1", "admin1@titan.com", domain.RoleAdmin, "TI"},
	{"Admin TI 2", "admin2@titan.com", domain.RoleAdmin, "TI"},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	eventRepo := repository.NewTicketEventRepository(pool)

	hash, err := auth.HashPassword(seedPassword, cfg.Auth.BcryptCost)
	if err != nil {
		logger.Fatal("failed to hash seed password", zap.Error(err))
	}

	byEmail := make(map[string]*domain.User, len(seedUsers))
	for _, su := range seedUsers {
		existing, err := userRepo.GetByEmail(ctx, su.email)
		if err == nil {
			byEmail[su.email] = existing
			continue
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			logger.Fatal("failed to look up user", zap.String("email", su.email), zap.Error(err))
		}

		area := su.area
		user := &domain.User{
			Name:         su.name,
			Email:        su.email,
			PasswordHash: hash,
			Role:         su.role,
			Area:         &area,
			IsActive:     true,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			logger.Fatal("failed to create user", zap.String("email", su.email), zap.Error(err))
		}
		byEmail[su.email] = user
		logger.Info("created user", zap.String("email", su.email), zap.String("role", string(su.role)))
	}

	var ticketCount int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM tickets`).Scan(&ticketCount); err != nil {
		logger.Fatal("failed to count tickets", zap.Error(err))
	}
	if ticketCount > 0 {
		logger.Info("tickets already present; skipping demo tickets", zap.Int("count", ticketCount))
		return
	}

	now := time.Now()
	demoTickets := []struct {
		ticket    domain.Ticket
		requester string
	}{
		{
			ticket: domain.Ticket{
				Title:       "PC no enciende",
				Description: "El equipo de caja 2 no arranca.",
				Area:        "TI",
				Priority:    domain.TicketPriorityAlta,
				Type:        domain.TicketTypeIncidente,
				Status:      domain.TicketStatusAbierto,
				RequesterID: &byEmail["ana@titan.com"].ID,
				AssigneeID:  &byEmail["n1@titan.com"].ID,
			},
			requester: "ana@titan.com",
		},
		{
			ticket: domain.Ticket{
				Title:       "Instalación de impresora",
				Description: "Nueva impresora de red para el área de Marketing.",
				Area:        "Marketing",
				Priority:    domain.TicketPriorityMedia,
				Type:        domain.TicketTypeSolicitud,
				Status:      domain.TicketStatusEnProceso,
				RequesterID: &byEmail["luis@titan.com"].ID,
				AssigneeID:  &byEmail["n2@titan.com"].ID,
			},
			requester: "luis@titan.com",
		},
	}

	for i := range demoTickets {
		ticket := &demoTickets[i].ticket
		dueAt := domain.DueAtFor(ticket.Priority, now)
		ticket.DueAt = &dueAt

		if err := ticketRepo.Create(ctx, ticket); err != nil {
			logger.Fatal("failed to create demo ticket", zap.String("title", ticket.Title), zap.Error(err))
		}

		event := &domain.TicketEvent{
			TicketID: ticket.ID,
			Action:   domain.EventActionCreated,
			By:       byEmail[demoTickets[i].requester].ActorName(),
		}
		if err := eventRepo.Create(ctx, event); err != nil {
			logger.Fatal("failed to create demo event", zap.String("ticket", ticket.Number), zap.Error(err))
		}
		logger.Info("created demo ticket", zap.String("number", ticket.Number))
	}

	logger.Info("seed complete", zap.Int("users", len(seedUsers)), zap.Int("tickets", len(demoTickets)))
}

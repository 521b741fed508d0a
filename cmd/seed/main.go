package main

import (
	"log"
	"os"
	"time"

	"recstudio/internal/database"
	"recstudio/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

// Seeds a demo studio with staff, rooms, clients, gear and a week of
// sessions around the current date, so the schedule view has something in
// every bucket right after seeding.
func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "recstudio.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running migrations...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("Migrate failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM gear_assignments")
	db.Exec("DELETE FROM sessions")
	db.Exec("DELETE FROM studio_defaults")
	db.Exec("DELETE FROM gears")
	db.Exec("DELETE FROM clients")
	db.Exec("DELETE FROM rooms")
	db.Exec("DELETE FROM members")
	db.Exec("DELETE FROM studios")
	db.Exec("DELETE FROM users")

	// ================== USERS ==================
	log.Println("Creating users...")

	newUser := func(name, email, password string) domain.User {
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		u := domain.User{
			Email:        email,
			PasswordHash: string(hash),
			Name:         name,
		}
		db.Create(&u)
		return u
	}

	owner := newUser("Mara Voss", "mara@riverside.example", "owner123")
	admin := newUser("Theo Lindqvist", "theo@riverside.example", "admin123")
	eng1 := newUser("Dana Okafor", "dana@riverside.example", "engineer123")
	eng2 := newUser("Jules Marchetti", "jules@riverside.example", "engineer123")

	// ================== STUDIO ==================
	log.Println("Creating studio...")

	studio := domain.Studio{
		Name:     "Riverside Sound",
		Address:  "14 Quayside Lane",
		Timezone: "Europe/Berlin",
	}
	db.Create(&studio)

	db.Create(&domain.Member{StudioID: studio.ID, UserID: owner.ID, Role: domain.RoleOwner})
	db.Create(&domain.Member{StudioID: studio.ID, UserID: admin.ID, Role: domain.RoleAdmin})
	db.Create(&domain.Member{StudioID: studio.ID, UserID: eng1.ID, Role: domain.RoleEngineer})
	db.Create(&domain.Member{StudioID: studio.ID, UserID: eng2.ID, Role: domain.RoleEngineer})

	db.Create(&domain.StudioDefaults{
		StudioID:      studio.ID,
		SessionHours:  3,
		BufferMinutes: 30,
	})

	// ================== ROOMS ==================
	log.Println("Creating rooms...")

	roomA := domain.Room{StudioID: studio.ID, Name: "Studio A", Description: "Live room with the Neve console", HourlyRate: "120/hr", IsActive: true}
	roomB := domain.Room{StudioID: studio.ID, Name: "Studio B", Description: "Mixing suite", HourlyRate: "85/hr", IsActive: true}
	booth := domain.Room{StudioID: studio.ID, Name: "Vocal Booth", Description: "Iso booth off the B control room", HourlyRate: "45/hr", IsActive: true}
	db.Create(&roomA)
	db.Create(&roomB)
	db.Create(&booth)

	// ================== CLIENTS ==================
	log.Println("Creating clients...")

	arcs := domain.Client{StudioID: studio.ID, Name: "The Midnight Arcs", Email: "band@midnightarcs.example", Phone: "+49 170 2345678"}
	vela := domain.Client{StudioID: studio.ID, Name: "Vela Quartet", Notes: "String quartet, needs four chairs and stands"}
	solo := domain.Client{StudioID: studio.ID, Name: "Iris Bell", Email: "iris@bellmusic.example"}
	db.Create(&arcs)
	db.Create(&vela)
	db.Create(&solo)

	// ================== GEAR ==================
	log.Println("Creating gear...")

	u87 := domain.Gear{StudioID: studio.ID, Name: "U87", Brand: "Neumann", Category: "microphone", Quantity: 2}
	sm57 := domain.Gear{StudioID: studio.ID, Name: "SM57", Brand: "Shure", Category: "microphone", Quantity: 6}
	la2a := domain.Gear{StudioID: studio.ID, Name: "LA-2A", Brand: "Teletronix", Category: "compressor", Quantity: 1}
	moog := domain.Gear{StudioID: studio.ID, Name: "Moog One", Brand: "Moog", Category: "synth"}
	db.Create(&u87)
	db.Create(&sm57)
	db.Create(&la2a)
	db.Create(&moog)

	// ================== SESSIONS ==================
	log.Println("Creating sessions...")

	loc, err := time.LoadLocation(studio.Timezone)
	if err != nil {
		loc = time.Local
	}
	now := time.Now().In(loc)

	// studio-local clock time, days relative to today
	at := func(days, hour int) time.Time {
		d := now.AddDate(0, 0, days)
		return time.Date(d.Year(), d.Month(), d.Day(), hour, 0, 0, 0, loc)
	}

	newSession := func(room domain.Room, client domain.Client, engineerID *int64, start, end time.Time, status domain.SessionStatus, notes string) domain.Session {
		s := domain.Session{
			StudioID:   studio.ID,
			RoomID:     room.ID,
			ClientID:   client.ID,
			EngineerID: engineerID,
			StartTime:  start,
			EndTime:    end,
			Status:     status,
			Notes:      notes,
		}
		db.Create(&s)
		return s
	}

	// too old for the recently-finished window
	newSession(roomA, vela, &eng1.ID, at(-21, 14), at(-21, 18), domain.SessionCompleted, "Location test recording")

	// inside the window
	newSession(roomA, arcs, &eng1.ID, at(-3, 10), at(-3, 16), domain.SessionCompleted, "Drum tracking, day one")
	newSession(roomB, arcs, &eng2.ID, at(-2, 20), at(-1, 1), domain.SessionCompleted, "Overdubs ran past midnight")
	newSession(booth, solo, nil, at(-1, 12), at(-1, 14), domain.SessionNoShow, "")

	// on the air right now
	tracking := newSession(roomA, arcs, &eng1.ID, now.Add(-1*time.Hour), now.Add(2*time.Hour), domain.SessionInProgress, "Vocal comps")

	// upcoming
	newSession(roomB, solo, &eng2.ID, now.Add(4*time.Hour), now.Add(7*time.Hour), domain.SessionScheduled, "")
	mixdown := newSession(roomB, arcs, &eng2.ID, at(1, 11), at(1, 15), domain.SessionScheduled, "Rough mix review")
	newSession(roomA, vela, &eng1.ID, at(7, 10), at(7, 20), domain.SessionScheduled, "Full quartet, one-day record")

	// cancelled bookings stay on file but never show on the board
	newSession(roomA, solo, nil, at(2, 12), at(2, 16), domain.SessionCancelled, "Client moved the date")

	// ================== GEAR ASSIGNMENTS ==================
	log.Println("Assigning gear...")

	db.Create(&domain.GearAssignment{SessionID: tracking.ID, GearID: u87.ID, Note: "Lead vocal"})
	db.Create(&domain.GearAssignment{SessionID: tracking.ID, GearID: la2a.ID})
	db.Create(&domain.GearAssignment{SessionID: mixdown.ID, GearID: sm57.ID, Note: "Guitar re-amp"})

	log.Println("Seed completed!")
	log.Println("Test accounts (password after the slash):")
	log.Println("  Owner:    mara@riverside.example / owner123")
	log.Println("  Admin:    theo@riverside.example / admin123")
	log.Println("  Engineer: dana@riverside.example / engineer123")
	log.Println("  Engineer: jules@riverside.example / engineer123")
}

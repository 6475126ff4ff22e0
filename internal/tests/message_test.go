package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/CaptainFAHIM/uni-ride/internal/domain"
	"github.com/CaptainFAHIM/uni-ride/internal/service"
)

func newMessageService(messageRepo *MockMessageRepository, userRepo *MockUserRepository, rideRepo *MockRideRepository) *service.MessageService {
	if userRepo == nil {
		userRepo = NewMockUserRepository()
	}
	if rideRepo == nil {
		rideRepo = NewMockRideRepository()
	}
	return service.NewMessageService(messageRepo, userRepo, rideRepo, nil)
}

func TestSendMessage(t *testing.T) {
	t.Parallel()

	messageRepo := NewMockMessageRepository()
	svc := newMessageService(messageRepo, nil, nil)

	sender := &domain.User{ID: "alice"}
	msg, err := svc.Send(context.Background(), sender, "bob", "ride-1", "Is the front seat free?")
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if msg.SenderID != "alice" || msg.ReceiverID != "bob" || msg.RideID != "ride-1" {
		t.Errorf("Send() = %+v, want alice→bob about ride-1", msg)
	}
	if msg.Read {
		t.Error("new message must start unread")
	}
	if msg.SentAt.IsZero() {
		t.Error("SentAt not stamped")
	}

	t.Run("validation", func(t *testing.T) {
		if _, err := svc.Send(context.Background(), nil, "bob", "ride-1", "hi"); !errors.Is(err, service.ErrNotAuthenticated) {
			t.Errorf("Send(nil sender) error = %v, want ErrNotAuthenticated", err)
		}
		for _, tc := range []struct{ receiver, ride, content string }{
			{"", "ride-1", "hi"},
			{"bob", "", "hi"},
			{"bob", "ride-1", ""},
		} {
			if _, err := svc.Send(context.Background(), sender, tc.receiver, tc.ride, tc.content); !errors.Is(err, service.ErrMissingFields) {
				t.Errorf("Send(%q, %q, %q) error = %v, want ErrMissingFields", tc.receiver, tc.ride, tc.content, err)
			}
		}
	})
}

func TestGetThread_OrderAndMarkRead(t *testing.T) {
	t.Parallel()

	base := time.Now().Add(-time.Hour)
	messageRepo := NewMockMessageRepository()
	messageRepo.AddMessage(&domain.Message{ID: "m1", SenderID: "alice", ReceiverID: "bob", RideID: "ride-1", Content: "M1", SentAt: base})
	messageRepo.AddMessage(&domain.Message{ID: "m2", SenderID: "alice", ReceiverID: "bob", RideID: "ride-1", Content: "M2", SentAt: base.Add(time.Minute)})
	messageRepo.AddMessage(&domain.Message{ID: "m3", SenderID: "bob", ReceiverID: "alice", RideID: "ride-1", Content: "M3", SentAt: base.Add(2 * time.Minute)})
	// Same pair, different ride: excluded from this thread.
	messageRepo.AddMessage(&domain.Message{ID: "m4", SenderID: "bob", ReceiverID: "alice", RideID: "ride-2", Content: "M4", SentAt: base.Add(3 * time.Minute)})

	svc := newMessageService(messageRepo, nil, nil)
	alice := &domain.User{ID: "alice"}

	thread, err := svc.GetThread(context.Background(), alice, "bob", "ride-1")
	if err != nil {
		t.Fatalf("GetThread() error = %v", err)
	}
	if len(thread) != 3 {
		t.Fatalf("thread length = %d, want 3", len(thread))
	}
	for i, want := range []string{"M1", "M2", "M3"} {
		if thread[i].Content != want {
			t.Errorf("thread[%d] = %q, want %q", i, thread[i].Content, want)
		}
	}

	// Viewing the thread marks bob→alice messages read; alice's own stay as-is.
	if messageRepo.MarkReadCallCount != 1 {
		t.Errorf("MarkReadCallCount = %d, want 1", messageRepo.MarkReadCallCount)
	}
	after, _ := svc.GetThread(context.Background(), alice, "bob", "ride-1")
	for _, msg := range after {
		if msg.SenderID == "bob" && !msg.Read {
			t.Errorf("message %s from bob still unread after viewing", msg.ID)
		}
		if msg.SenderID == "alice" && msg.Read {
			t.Errorf("message %s from alice flipped to read without bob viewing", msg.ID)
		}
	}
}

func TestListConversations_GroupsByCounterpartAndRide(t *testing.T) {
	t.Parallel()

	base := time.Now().Add(-time.Hour)
	messageRepo := NewMockMessageRepository()
	messageRepo.AddMessage(&domain.Message{ID: "m1", SenderID: "alice", ReceiverID: "bob", RideID: "ride-1", Content: "M1", SentAt: base})
	messageRepo.AddMessage(&domain.Message{ID: "m2", SenderID: "alice", ReceiverID: "bob", RideID: "ride-1", Content: "M2", SentAt: base.Add(time.Minute)})
	messageRepo.AddMessage(&domain.Message{ID: "m3", SenderID: "bob", ReceiverID: "alice", RideID: "ride-1", Content: "M3", SentAt: base.Add(2 * time.Minute)})

	userRepo := NewMockUserRepository()
	userRepo.AddUser(&domain.User{ID: "alice", Name: "Alice"})
	userRepo.AddUser(&domain.User{ID: "bob", Name: "Bob"})

	rideRepo := NewMockRideRepository()
	rideRepo.AddRide(&domain.Ride{ID: "ride-1", RiderID: "bob", University: "Dhaka University", StartLocation: "Mirpur 10", Status: domain.RideStatusActive})

	svc := newMessageService(messageRepo, userRepo, rideRepo)

	// Both parties see one conversation summarized by the latest message.
	for _, viewer := range []string{"alice", "bob"} {
		convs, err := svc.ListConversations(context.Background(), &domain.User{ID: viewer})
		if err != nil {
			t.Fatalf("ListConversations(%s) error = %v", viewer, err)
		}
		if len(convs) != 1 {
			t.Fatalf("ListConversations(%s) returned %d conversations, want 1", viewer, len(convs))
		}
		if convs[0].LastMessage != "M3" {
			t.Errorf("ListConversations(%s) summary = %q, want M3", viewer, convs[0].LastMessage)
		}
		if convs[0].University != "Dhaka University" {
			t.Errorf("ride context university = %q, want Dhaka University", convs[0].University)
		}
	}

	// M3 is bob→alice and unread, so only alice's inbox flags it.
	aliceConvs, _ := svc.ListConversations(context.Background(), &domain.User{ID: "alice"})
	if !aliceConvs[0].Unread {
		t.Error("alice's conversation should be flagged unread")
	}
	if aliceConvs[0].OtherUser.Name != "Bob" {
		t.Errorf("alice's counterpart = %q, want Bob", aliceConvs[0].OtherUser.Name)
	}
	bobConvs, _ := svc.ListConversations(context.Background(), &domain.User{ID: "bob"})
	if bobConvs[0].Unread {
		t.Error("bob's conversation should not be unread, he sent the last message")
	}

	// Viewing the thread clears the flag.
	if _, err := svc.GetThread(context.Background(), &domain.User{ID: "alice"}, "bob", "ride-1"); err != nil {
		t.Fatalf("GetThread() error = %v", err)
	}
	aliceConvs, _ = svc.ListConversations(context.Background(), &domain.User{ID: "alice"})
	if aliceConvs[0].Unread {
		t.Error("conversation still unread after viewing the thread")
	}
}

func TestListConversations_SplitsPerRide(t *testing.T) {
	t.Parallel()

	base := time.Now().Add(-time.Hour)
	messageRepo := NewMockMessageRepository()
	messageRepo.AddMessage(&domain.Message{ID: "m1", SenderID: "alice", ReceiverID: "bob", RideID: "ride-1", Content: "about ride one", SentAt: base})
	messageRepo.AddMessage(&domain.Message{ID: "m2", SenderID: "alice", ReceiverID: "bob", RideID: "ride-2", Content: "about ride two", SentAt: base.Add(time.Minute)})

	userRepo := NewMockUserRepository()
	userRepo.AddUser(&domain.User{ID: "bob", Name: "Bob"})

	svc := newMessageService(messageRepo, userRepo, NewMockRideRepository())

	convs, err := svc.ListConversations(context.Background(), &domain.User{ID: "alice"})
	if err != nil {
		t.Fatalf("ListConversations() error = %v", err)
	}
	if len(convs) != 2 {
		t.Fatalf("conversation count = %d, want 2 (one per ride)", len(convs))
	}
	// Newest summary first.
	if convs[0].RideID != "ride-2" || convs[1].RideID != "ride-1" {
		t.Errorf("conversation order = [%s %s], want [ride-2 ride-1]", convs[0].RideID, convs[1].RideID)
	}

	// Both rides are gone from the repository: summaries survive with blank
	// ride context rather than erroring.
	for _, conv := range convs {
		if conv.University != "" || conv.StartLocation != "" {
			t.Errorf("conversation %s carries ride context %q/%q for a deleted ride", conv.RideID, conv.University, conv.StartLocation)
		}
	}
}

func TestListConversations_UnknownCounterpart(t *testing.T) {
	t.Parallel()

	messageRepo := NewMockMessageRepository()
	messageRepo.AddMessage(&domain.Message{ID: "m1", SenderID: "ghost", ReceiverID: "alice", RideID: "ride-1", Content: "hello", SentAt: time.Now()})

	svc := newMessageService(messageRepo, NewMockUserRepository(), NewMockRideRepository())

	convs, err := svc.ListConversations(context.Background(), &domain.User{ID: "alice"})
	if err != nil {
		t.Fatalf("ListConversations() error = %v", err)
	}
	if len(convs) != 1 {
		t.Fatalf("conversation count = %d, want 1", len(convs))
	}
	if convs[0].OtherUser.ID != "ghost" || convs[0].OtherUser.Name != "" {
		t.Errorf("counterpart = %+v, want bare ID for a deleted account", convs[0].OtherUser)
	}
}

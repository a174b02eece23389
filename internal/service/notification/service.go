package notification

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"blood-connect/internal/domain"
	"blood-connect/internal/repository"
	"blood-connect/internal/service/email"
	"blood-connect/internal/service/helpers"
	"blood-connect/internal/service/matching"
)

const emailTimeout = 30 * time.Second

type Service interface {
	Create(ctx context.Context, input domain.CreateNotificationInput) (*domain.Notification, error)
	GetByID(ctx context.Context, id string) (*domain.Notification, error)
	List(ctx context.Context, userID string, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error)
	GetUnreadCount(ctx context.Context, userID string) (int64, error)
	MarkAsRead(ctx context.Context, userID, id string) error
	MarkAllAsRead(ctx context.Context, userID string) (int, error)
	Delete(ctx context.Context, userID, id string) error
	DeleteAll(ctx context.Context, userID string) (int, error)

	NotifyRequestDonors(ctx context.Context, req *domain.BloodRequest) (int, error)
	NotifyMatch(ctx context.Context, req *domain.BloodRequest, donorCount int) (int, error)
	NotifyLowStock(ctx context.Context, inv *domain.BloodInventory) (int, error)
	NotifyDonationRecorded(ctx context.Context, donor *domain.User) (int, error)
	NotifyBookingConfirmed(ctx context.Context, userID string, camp *domain.DonationCamp) (int, error)
	NotifyCampReminder(ctx context.Context, camp *domain.DonationCamp, userIDs []string) (int, error)
	NotifyEligible(ctx context.Context, donors []domain.User) (int, error)
}

type service struct {
	notifRepo repository.NotificationRepository
	userRepo  repository.UserRepository
	emailSvc  email.Service
	rt        helpers.Runtime

	emails sync.WaitGroup
}

func NewService(
	notifRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
	emailSvc email.Service,
	rt helpers.Runtime,
) Service {
	return &service{
		notifRepo: notifRepo,
		userRepo:  userRepo,
		emailSvc:  emailSvc,
		rt:        rt,
	}
}

func (s *service) Create(ctx context.Context, input domain.CreateNotificationInput) (*domain.Notification, error) {
	if err := s.rt.Delay(ctx); err != nil {
		return nil, err
	}

	notif := s.build(input.UserID, input.Type, input.Title, input.Message)
	if err := s.notifRepo.Create(ctx, &notif); err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}
	return &notif, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*domain.Notification, error) {
	notif, err := s.notifRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if notif == nil {
		return nil, fmt.Errorf("notification %w", domain.ErrNotFound)
	}
	return notif, nil
}

func (s *service) List(ctx context.Context, userID string, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error) {
	if err := s.rt.Delay(ctx); err != nil {
		return domain.PaginatedResponse[domain.Notification]{}, err
	}
	params.Validate()

	notifications, total, err := s.notifRepo.ListByUser(ctx, userID, unreadOnly, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Notification]{}, err
	}

	return domain.NewPaginatedResponse(notifications, params.Page, params.PageSize, total), nil
}

func (s *service) GetUnreadCount(ctx context.Context, userID string) (int64, error) {
	return s.notifRepo.CountUnread(ctx, userID)
}

// owned loads the notification and hides other users' rows as not found.
func (s *service) owned(ctx context.Context, userID, id string) error {
	notif, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if notif.UserID != userID {
		return fmt.Errorf("notification %w", domain.ErrNotFound)
	}
	return nil
}

func (s *service) MarkAsRead(ctx context.Context, userID, id string) error {
	if err := s.owned(ctx, userID, id); err != nil {
		return err
	}
	_, err := s.notifRepo.MarkAsRead(ctx, id, s.rt.Timestamp())
	return err
}

func (s *service) MarkAllAsRead(ctx context.Context, userID string) (int, error) {
	if err := s.rt.Delay(ctx); err != nil {
		return 0, err
	}
	return s.notifRepo.MarkAllAsRead(ctx, userID, s.rt.Timestamp())
}

func (s *service) Delete(ctx context.Context, userID, id string) error {
	if err := s.owned(ctx, userID, id); err != nil {
		return err
	}
	_, err := s.notifRepo.Delete(ctx, id)
	return err
}

func (s *service) DeleteAll(ctx context.Context, userID string) (int, error) {
	if err := s.rt.Delay(ctx); err != nil {
		return 0, err
	}
	return s.notifRepo.DeleteByUser(ctx, userID)
}

// NotifyRequestDonors alerts donors whose type is exactly the requested one
// and who are marked available.
func (s *service) NotifyRequestDonors(ctx context.Context, req *domain.BloodRequest) (int, error) {
	donors, err := s.userRepo.ListByRole(ctx, domain.RoleDonor)
	if err != nil {
		return 0, fmt.Errorf("failed to get donors: %w", err)
	}

	var recipients []domain.User
	for i := range donors {
		if matching.EligibleForRequestAlert(&donors[i], req.BloodGroup) {
			recipients = append(recipients, donors[i])
		}
	}

	title := fmt.Sprintf("%s Blood Request", req.Urgency)
	message := fmt.Sprintf("%d unit(s) of %s blood needed at %s. Can you help?", req.Quantity, req.BloodGroup, req.Hospital)
	return s.fanOut(ctx, recipients, domain.NotifRequest, title, message)
}

func (s *service) NotifyMatch(ctx context.Context, req *domain.BloodRequest, donorCount int) (int, error) {
	message := fmt.Sprintf("Good news! We found %d compatible donor(s) for %s blood. Check your dashboard for details.", donorCount, req.BloodGroup)
	return s.notifyUsers(ctx, []string{req.RecipientID}, domain.NotifMatch, "Donors Found!", message)
}

// NotifyLowStock alerts every admin.
func (s *service) NotifyLowStock(ctx context.Context, inv *domain.BloodInventory) (int, error) {
	admins, err := s.userRepo.ListByRole(ctx, domain.RoleAdmin)
	if err != nil {
		return 0, fmt.Errorf("failed to get admins: %w", err)
	}

	message := fmt.Sprintf("%s blood stock is %s (%d units remaining). Immediate action required.",
		inv.BloodGroup, lowStockLabel(inv.Status), inv.Units)
	return s.fanOut(ctx, admins, domain.NotifAlert, "Low Blood Stock Alert", message)
}

func lowStockLabel(status domain.InventoryStatus) string {
	if status == domain.StockCritical {
		return "critical"
	}
	return "low"
}

func (s *service) NotifyDonationRecorded(ctx context.Context, donor *domain.User) (int, error) {
	message := "Thank you for your donation!"
	if donor.NextEligibleDate != nil {
		message = fmt.Sprintf("Thank you for your donation! You'll be eligible to donate again after %s.",
			donor.NextEligibleDate.Format(domain.DateLayout))
	}
	return s.fanOut(ctx, []domain.User{*donor}, domain.NotifInfo, "Donation Recorded", message)
}

func (s *service) NotifyBookingConfirmed(ctx context.Context, userID string, camp *domain.DonationCamp) (int, error) {
	message := fmt.Sprintf("Your slot at %s on %s is confirmed!", camp.Name, camp.Date.Format(domain.DateLayout))
	return s.notifyUsers(ctx, []string{userID}, domain.NotifInfo, "Camp Booking Confirmed", message)
}

func (s *service) NotifyCampReminder(ctx context.Context, camp *domain.DonationCamp, userIDs []string) (int, error) {
	message := fmt.Sprintf("Reminder: %s is scheduled for %s. Don't forget!", camp.Name, camp.Date.Format(domain.DateLayout))
	return s.notifyUsers(ctx, userIDs, domain.NotifReminder, "Upcoming Donation Camp", message)
}

func (s *service) NotifyEligible(ctx context.Context, donors []domain.User) (int, error) {
	return s.fanOut(ctx, donors, domain.NotifReminder, "Time to Donate Again",
		"You're now eligible to donate blood. Help save lives today!")
}

// notifyUsers resolves ids to users so the email side channel has addresses.
// Unknown ids still get an in-app notification.
func (s *service) notifyUsers(ctx context.Context, userIDs []string, typ domain.NotificationType, title, message string) (int, error) {
	users := make([]domain.User, 0, len(userIDs))
	for _, id := range userIDs {
		u, err := s.userRepo.GetByID(ctx, id)
		if err != nil {
			return 0, fmt.Errorf("failed to get user %s: %w", id, err)
		}
		if u == nil {
			users = append(users, domain.User{ID: id})
			continue
		}
		users = append(users, *u)
	}
	return s.fanOut(ctx, users, typ, title, message)
}

// fanOut writes one notification per distinct recipient in a single batch
// and queues the matching emails.
func (s *service) fanOut(ctx context.Context, users []domain.User, typ domain.NotificationType, title, message string) (int, error) {
	if len(users) == 0 {
		return 0, nil
	}
	if err := s.rt.Delay(ctx); err != nil {
		return 0, err
	}

	seen := make(map[string]struct{}, len(users))
	batch := make([]domain.Notification, 0, len(users))
	var targets []domain.User
	for _, u := range users {
		if _, dup := seen[u.ID]; dup {
			continue
		}
		seen[u.ID] = struct{}{}
		batch = append(batch, s.build(u.ID, typ, title, message))
		targets = append(targets, u)
	}

	if err := s.notifRepo.CreateBatch(ctx, batch); err != nil {
		return 0, fmt.Errorf("failed to create notifications: %w", err)
	}

	s.rt.Log().Info("notifications sent",
		zap.String("type", string(typ)),
		zap.String("title", title),
		zap.Int("count", len(batch)))

	for _, u := range targets {
		s.sendEmail(u, title, message)
	}
	return len(batch), nil
}

func (s *service) sendEmail(u domain.User, title, message string) {
	if s.emailSvc == nil || u.Email == "" {
		return
	}

	s.emails.Add(1)
	go func(toEmail, name string) {
		defer s.emails.Done()
		ctx, cancel := context.WithTimeout(context.Background(), emailTimeout)
		defer cancel()
		if err := s.emailSvc.SendNotificationEmail(ctx, toEmail, name, title, message); err != nil {
			s.rt.Log().Warn("failed to send notification email",
				zap.String("to", toEmail),
				zap.String("title", title),
				zap.Error(err))
		}
	}(u.Email, u.Name)
}

func (s *service) build(userID string, typ domain.NotificationType, title, message string) domain.Notification {
	return domain.Notification{
		ID:      helpers.NewID(),
		UserID:  userID,
		Type:    typ,
		Title:   title,
		Message: message,
		Date:    s.rt.Timestamp(),
		Read:    false,
	}
}

package validation

import "edumart/internal/models"

// Entity names used by handlers to look descriptors up.
const (
	EntityOrganization        = "organization"
	EntityUser                = "user"
	EntityStudent             = "student"
	EntityProfile             = "profile"
	EntityOrganizationPayment = "organization_payment"
	EntityStudentPayment      = "student_payment"
	EntityResult              = "result"
	EntityExam                = "exam"
	EntityDepartment          = "department"
	EntityBanner              = "banner"
	EntityNotice              = "notice"
	EntityAbout               = "about"
)

// NewEntityRegistry builds the descriptor registry for every domain entity.
// Called once in main; handlers receive the registry explicitly.
func NewEntityRegistry() *Registry {
	r := NewRegistry()

	r.Register(Descriptor{
		Entity: EntityOrganization,
		Fields: []Field{
			{Name: "name", Kind: KindString, Required: true},
			{Name: "subdomain", Kind: KindString, Required: true},
			{Name: "custom_domain", Kind: KindString},
			{Name: "logo_url", Kind: KindString},
			{Name: "plan", Kind: KindString, Required: true},
			{Name: "subscription_status", Kind: KindString, Enum: models.SubscriptionStatuses},
			{Name: "expires_at", Kind: KindDate},
		},
	})

	r.Register(Descriptor{
		Entity: EntityUser,
		Fields: []Field{
			{Name: "email", Kind: KindString, Required: true},
			{Name: "password", Kind: KindString, Required: true},
			{Name: "role", Kind: KindString, Required: true, Enum: models.AllRoles},
			{Name: "name", Kind: KindString, Required: true},
			{Name: "phone", Kind: KindString},
			{Name: "designation", Kind: KindString},
			{Name: "class_name", Kind: KindString},
			{Name: "section", Kind: KindString},
			{Name: "roll", Kind: KindInt, Min: bound(1)},
			{Name: "session", Kind: KindString},
			{Name: "guardian_name", Kind: KindString},
			{Name: "is_deleted", Kind: KindBool, ServerManaged: true},
			{Name: "is_blocked", Kind: KindBool, ServerManaged: true},
		},
	})

	r.Register(Descriptor{
		Entity: EntityStudent,
		Fields: []Field{
			{Name: "name", Kind: KindString, Required: true},
			{Name: "class_name", Kind: KindString, Required: true},
			{Name: "section", Kind: KindString},
			{Name: "roll", Kind: KindInt, Required: true, Min: bound(1)},
			{Name: "session", Kind: KindString, Required: true},
			{Name: "guardian_name", Kind: KindString},
			{Name: "phone", Kind: KindString},
			{Name: "is_deleted", Kind: KindBool, ServerManaged: true},
		},
	})

	r.Register(Descriptor{
		Entity: EntityProfile,
		Fields: []Field{
			{Name: "name", Kind: KindString, Required: true},
			{Name: "phone", Kind: KindString},
			{Name: "designation", Kind: KindString},
			{Name: "is_deleted", Kind: KindBool, ServerManaged: true},
		},
	})

	r.Register(Descriptor{
		Entity: EntityOrganizationPayment,
		Fields: []Field{
			{Name: "organization", Kind: KindUUID, Required: true, Ref: EntityOrganization},
			{Name: "subscription_status", Kind: KindString, Required: true, Enum: models.BillingCycles},
			{Name: "amount", Kind: KindFloat, Required: true, Min: bound(0)},
			{Name: "pay_status", Kind: KindString, Required: true, Enum: models.PayStatuses},
			{Name: "pay_date", Kind: KindDate, Required: true},
			{Name: "expire_at", Kind: KindDate, Required: true},
			{Name: "is_deleted", Kind: KindBool, ServerManaged: true},
		},
	})

	r.Register(Descriptor{
		Entity: EntityStudentPayment,
		Fields: []Field{
			{Name: "student", Kind: KindUUID, Required: true, Ref: EntityStudent},
			{Name: "payment_type", Kind: KindString, Required: true, Enum: models.StudentPaymentTypes},
			{Name: "amount", Kind: KindFloat, Required: true, Min: bound(0)},
			{Name: "pay_status", Kind: KindString, Required: true, Enum: models.PayStatuses},
			{Name: "pay_date", Kind: KindDate, Required: true},
			{Name: "month", Kind: KindString},
			{Name: "year", Kind: KindInt, Required: true, Min: bound(2000)},
			{Name: "is_deleted", Kind: KindBool, ServerManaged: true},
		},
	})

	r.Register(Descriptor{
		Entity: EntityResult,
		Fields: []Field{
			{Name: "student", Kind: KindUUID, Required: true, Ref: EntityStudent},
			{Name: "exam", Kind: KindUUID, Required: true, Ref: EntityExam},
			{Name: "session", Kind: KindString, Required: true},
			{Name: "results", Kind: KindList, Required: true, MinLen: 1, Elem: &Descriptor{
				Entity: "subject_result",
				Fields: []Field{
					{Name: "subject", Kind: KindString, Required: true},
					{Name: "marks", Kind: KindFloat, Required: true, Min: bound(0), Max: bound(100)},
					{Name: "grade", Kind: KindString, Required: true, Enum: models.Grades},
				},
			}},
			{Name: "gpa", Kind: KindFloat, Required: true, Min: bound(0), Max: bound(5)},
			{Name: "is_passed", Kind: KindBool, Required: true},
		},
	})

	r.Register(Descriptor{
		Entity: EntityExam,
		Fields: []Field{
			{Name: "name", Kind: KindString, Required: true},
			{Name: "exam_type", Kind: KindString},
			{Name: "year", Kind: KindInt, Required: true, Min: bound(2000)},
			{Name: "is_deleted", Kind: KindBool, ServerManaged: true},
		},
	})

	r.Register(Descriptor{
		Entity: EntityDepartment,
		Fields: []Field{
			{Name: "name", Kind: KindString, Required: true},
			{Name: "head", Kind: KindString},
		},
	})

	r.Register(Descriptor{
		Entity: EntityBanner,
		Fields: []Field{
			{Name: "title", Kind: KindString, Required: true},
			{Name: "image_url", Kind: KindString, Required: true},
		},
	})

	r.Register(Descriptor{
		Entity: EntityNotice,
		Fields: []Field{
			{Name: "title", Kind: KindString, Required: true},
			{Name: "body", Kind: KindString, Required: true},
			{Name: "published_at", Kind: KindDate},
		},
	})

	r.Register(Descriptor{
		Entity: EntityAbout,
		Fields: []Field{
			{Name: "title", Kind: KindString, Required: true},
			{Name: "body", Kind: KindString, Required: true},
		},
	})

	return r
}

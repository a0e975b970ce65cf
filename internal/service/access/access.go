// Package access решает, может ли пользователь выполнить действие над ресурсом.
// Все проверки ролей и владения собраны в одной таблице правил.
package access

import "ortus-club/internal/models"

type Action string

const (
	SessionManage Action = "session.manage"

	AttendanceOpen        Action = "attendance.open"
	AttendanceMark        Action = "attendance.mark"
	AttendanceViewGroup   Action = "attendance.view_group"
	AttendanceViewStudent Action = "attendance.view_student"

	PhotoSubmitTraining Action = "photo.submit_training"
	PhotoSubmitCleaning Action = "photo.submit_cleaning"
	PhotoList           Action = "photo.list"
	PhotoView           Action = "photo.view"

	TimingSubmit  Action = "timing.submit"
	TimingListOwn Action = "timing.list_own"
	TimingListAll Action = "timing.list_all"
	TimingDelete  Action = "timing.delete"

	CleaningSubmit Action = "cleaning.submit"
	CleaningList   Action = "cleaning.list"

	ScheduleManage Action = "schedule.manage"
)

// Resource - владельцы ресурса. Незаполненные поля равны 0.
type Resource struct {
	GroupTrainerID int64 // тренер группы (расписания, записи посещаемости, студента)
	OwnerID        int64 // автор отчёта или сотрудник уборки
	StudentID      int64
	ParentID       int64
}

// Decision - результат проверки. Elevated означает доступ без проверки владения
// (для списков это "видит всё").
type Decision struct {
	Allowed  bool
	Elevated bool
	Reason   string
}

type ownerFunc func(actor models.Actor, res Resource) bool

type rule struct {
	elevated []models.Role
	roles    []models.Role // пусто - любая роль
	owner    ownerFunc     // nil - владение не проверяется
	noRole   string
	notOwner string
}

var (
	adminOrDirector = []models.Role{models.RoleAdmin, models.RoleDirector}
	managers        = []models.Role{models.RoleAdmin, models.RoleDirector, models.RoleManager}
)

func groupTrainer(a models.Actor, r Resource) bool {
	return r.GroupTrainerID != 0 && r.GroupTrainerID == a.UserID
}

func owner(a models.Actor, r Resource) bool {
	return r.OwnerID != 0 && r.OwnerID == a.UserID
}

func studentRelated(a models.Actor, r Resource) bool {
	return (r.StudentID != 0 && r.StudentID == a.UserID) ||
		(r.ParentID != 0 && r.ParentID == a.UserID) ||
		groupTrainer(a, r)
}

func nobody(models.Actor, Resource) bool { return false }

var rules = map[Action]rule{
	SessionManage: {
		elevated: adminOrDirector,
		roles:    []models.Role{models.RoleTrainer},
		owner:    groupTrainer,
		noRole:   "Access denied",
		notOwner: "Not authorized for this schedule",
	},
	AttendanceOpen: {
		roles:    []models.Role{models.RoleTrainer},
		owner:    groupTrainer,
		noRole:   "Only trainers can mark attendance",
		notOwner: "Not your group",
	},
	AttendanceMark: {
		roles:    []models.Role{models.RoleTrainer},
		owner:    groupTrainer,
		noRole:   "Only trainers can mark attendance",
		notOwner: "Not your group",
	},
	AttendanceViewGroup: {
		elevated: adminOrDirector,
		owner:    groupTrainer,
		notOwner: "Access denied",
	},
	AttendanceViewStudent: {
		elevated: adminOrDirector,
		owner:    studentRelated,
		notOwner: "Access denied",
	},
	PhotoSubmitTraining: {
		elevated: adminOrDirector,
		roles:    []models.Role{models.RoleTrainer},
		owner:    groupTrainer,
		noRole:   "Only trainers can submit training photo reports",
		notOwner: "Cannot submit photo report for another trainer",
	},
	PhotoSubmitCleaning: {
		elevated: adminOrDirector,
		roles:    []models.Role{models.RoleTechStaff},
		owner:    owner,
		noRole:   "Only tech staff can submit cleaning reports",
		notOwner: "Cannot submit photo report for another staff member",
	},
	PhotoList: {
		elevated: managers,
		roles:    []models.Role{models.RoleTrainer, models.RoleTechStaff},
		noRole:   "Access denied for photo reports",
	},
	PhotoView: {
		elevated: managers,
		owner:    owner,
		notOwner: "Access denied for photo reports",
	},
	TimingSubmit: {
		roles:  []models.Role{models.RoleTrainer},
		noRole: "Access denied",
	},
	TimingListOwn: {
		roles:  []models.Role{models.RoleTrainer},
		noRole: "Access denied",
	},
	TimingListAll: {
		elevated: managers,
		owner:    nobody,
		notOwner: "Access denied",
	},
	TimingDelete: {
		roles:    []models.Role{models.RoleTrainer},
		owner:    owner,
		noRole:   "Access denied",
		notOwner: "Not authorized",
	},
	CleaningSubmit: {
		elevated: adminOrDirector,
		roles:    []models.Role{models.RoleTechStaff},
		noRole:   "Only tech staff can create cleaning reports",
	},
	CleaningList: {
		elevated: managers,
		roles:    []models.Role{models.RoleTechStaff},
		noRole:   "Access denied to cleaning reports",
	},
	ScheduleManage: {
		elevated: adminOrDirector,
		owner:    groupTrainer,
		notOwner: "Only group trainer can manage schedule",
	},
}

func allow(elevated bool) Decision { return Decision{Allowed: true, Elevated: elevated} }
func deny(reason string) Decision  { return Decision{Reason: reason} }

// Permits проверяет только роль, до загрузки ресурса
func Permits(actor models.Actor, action Action) Decision {
	r, ok := rules[action]
	if !ok {
		return deny("Access denied")
	}
	if len(r.elevated) > 0 && actor.Has(r.elevated...) {
		return allow(true)
	}
	if len(r.roles) > 0 && !actor.Has(r.roles...) {
		return deny(r.noRole)
	}
	return allow(false)
}

// Decide - единственная точка проверки прав
func Decide(actor models.Actor, action Action, res Resource) Decision {
	d := Permits(actor, action)
	if !d.Allowed || d.Elevated {
		return d
	}
	if r := rules[action]; r.owner != nil && !r.owner(actor, res) {
		return deny(r.notOwner)
	}
	return d
}

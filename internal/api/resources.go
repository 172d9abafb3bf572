package api

import (
	"context"
	"fmt"
	"time"
)

// Course is a bookable class in the catalog.
type Course struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description,omitempty"`
	BranchID     int     `json:"branch_id"`
	InstructorID int     `json:"instructor_id"`
	Capacity     int     `json:"capacity"`
	Price        float64 `json:"price"`
	Schedule     string  `json:"schedule,omitempty"`
	Active       bool    `json:"active"`
}

// Instructor teaches courses at one or more branches.
type Instructor struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Bio      string `json:"bio,omitempty"`
	PhotoURL string `json:"photo_url,omitempty"`
	Active   bool   `json:"active"`
}

// Branch is a studio location.
type Branch struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Active  bool   `json:"active"`
}

// Enrollment books a customer into a course.
type Enrollment struct {
	ID         int        `json:"id"`
	CourseID   int        `json:"course_id"`
	CustomerID int        `json:"customer_id"`
	Status     string     `json:"status"`
	StartsAt   *time.Time `json:"starts_at,omitempty"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	Remaining  int        `json:"remaining_sessions"`
}

// Customer is a member of the studio.
type Customer struct {
	ID       int        `json:"id"`
	Name     string     `json:"name"`
	Email    string     `json:"email,omitempty"`
	Phone    string     `json:"phone,omitempty"`
	LineID   string     `json:"line_id,omitempty"`
	Note     string     `json:"note,omitempty"`
	Active   bool       `json:"active"`
	JoinedAt *time.Time `json:"joined_at,omitempty"`
}

// AdminUser is a backoffice account.
type AdminUser struct {
	ID          int      `json:"id"`
	Email       string   `json:"email"`
	Name        string   `json:"name,omitempty"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions,omitempty"`
	Active      bool     `json:"active"`
}

// CheckIn records a customer attending a course session.
type CheckIn struct {
	ID           int       `json:"id"`
	EnrollmentID int       `json:"enrollment_id"`
	CustomerID   int       `json:"customer_id"`
	CourseID     int       `json:"course_id"`
	BranchID     int       `json:"branch_id"`
	CheckedInAt  time.Time `json:"checked_in_at"`
	CheckedInBy  int       `json:"checked_in_by,omitempty"`
}

// listResponse is the backend's list envelope: the whole collection in one
// response, paginated client-side.
type listResponse[T any] struct {
	Items []T `json:"items"`
}

func list[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	var resp listResponse[T]
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	if resp.Items == nil {
		resp.Items = []T{}
	}
	return resp.Items, nil
}

func create[T any](ctx context.Context, c *Client, path string, in *T) (*T, error) {
	var out T
	if err := c.post(ctx, path, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func update[T any](ctx context.Context, c *Client, path string, id int, in *T) (*T, error) {
	var out T
	if err := c.post(ctx, fmt.Sprintf("%s/%d", path, id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func remove(ctx context.Context, c *Client, path string, id int) error {
	return c.post(ctx, fmt.Sprintf("%s/%d/delete", path, id), nil, nil)
}

const (
	pathCourses     = "/api/v1/courses"
	pathInstructors = "/api/v1/instructors"
	pathBranches    = "/api/v1/branches"
	pathEnrollments = "/api/v1/enrollments"
	pathCustomers   = "/api/v1/customers"
	pathUsers       = "/api/v1/users"
	pathCheckIns    = "/api/v1/checkins"
)

func (c *Client) ListCourses(ctx context.Context) ([]Course, error) {
	return list[Course](ctx, c, pathCourses)
}

func (c *Client) CreateCourse(ctx context.Context, in *Course) (*Course, error) {
	return create(ctx, c, pathCourses, in)
}

func (c *Client) UpdateCourse(ctx context.Context, id int, in *Course) (*Course, error) {
	return update(ctx, c, pathCourses, id, in)
}

func (c *Client) DeleteCourse(ctx context.Context, id int) error {
	return remove(ctx, c, pathCourses, id)
}

func (c *Client) ListInstructors(ctx context.Context) ([]Instructor, error) {
	return list[Instructor](ctx, c, pathInstructors)
}

func (c *Client) CreateInstructor(ctx context.Context, in *Instructor) (*Instructor, error) {
	return create(ctx, c, pathInstructors, in)
}

func (c *Client) UpdateInstructor(ctx context.Context, id int, in *Instructor) (*Instructor, error) {
	return update(ctx, c, pathInstructors, id, in)
}

func (c *Client) DeleteInstructor(ctx context.Context, id int) error {
	return remove(ctx, c, pathInstructors, id)
}

func (c *Client) ListBranches(ctx context.Context) ([]Branch, error) {
	return list[Branch](ctx, c, pathBranches)
}

func (c *Client) CreateBranch(ctx context.Context, in *Branch) (*Branch, error) {
	return create(ctx, c, pathBranches, in)
}

func (c *Client) UpdateBranch(ctx context.Context, id int, in *Branch) (*Branch, error) {
	return update(ctx, c, pathBranches, id, in)
}

func (c *Client) DeleteBranch(ctx context.Context, id int) error {
	return remove(ctx, c, pathBranches, id)
}

func (c *Client) ListEnrollments(ctx context.Context) ([]Enrollment, error) {
	return list[Enrollment](ctx, c, pathEnrollments)
}

func (c *Client) CreateEnrollment(ctx context.Context, in *Enrollment) (*Enrollment, error) {
	return create(ctx, c, pathEnrollments, in)
}

func (c *Client) UpdateEnrollment(ctx context.Context, id int, in *Enrollment) (*Enrollment, error) {
	return update(ctx, c, pathEnrollments, id, in)
}

func (c *Client) DeleteEnrollment(ctx context.Context, id int) error {
	return remove(ctx, c, pathEnrollments, id)
}

func (c *Client) ListCustomers(ctx context.Context) ([]Customer, error) {
	return list[Customer](ctx, c, pathCustomers)
}

func (c *Client) CreateCustomer(ctx context.Context, in *Customer) (*Customer, error) {
	return create(ctx, c, pathCustomers, in)
}

func (c *Client) UpdateCustomer(ctx context.Context, id int, in *Customer) (*Customer, error) {
	return update(ctx, c, pathCustomers, id, in)
}

func (c *Client) DeleteCustomer(ctx context.Context, id int) error {
	return remove(ctx, c, pathCustomers, id)
}

func (c *Client) ListUsers(ctx context.Context) ([]AdminUser, error) {
	return list[AdminUser](ctx, c, pathUsers)
}

func (c *Client) CreateUser(ctx context.Context, in *AdminUser) (*AdminUser, error) {
	return create(ctx, c, pathUsers, in)
}

func (c *Client) UpdateUser(ctx context.Context, id int, in *AdminUser) (*AdminUser, error) {
	return update(ctx, c, pathUsers, id, in)
}

func (c *Client) DeleteUser(ctx context.Context, id int) error {
	return remove(ctx, c, pathUsers, id)
}

func (c *Client) ListCheckIns(ctx context.Context) ([]CheckIn, error) {
	return list[CheckIn](ctx, c, pathCheckIns)
}

func (c *Client) CreateCheckIn(ctx context.Context, in *CheckIn) (*CheckIn, error) {
	return create(ctx, c, pathCheckIns, in)
}

func (c *Client) DeleteCheckIn(ctx context.Context, id int) error {
	return remove(ctx, c, pathCheckIns, id)
}

package server

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sheetlord/coep.ultimatett.fyfirstsem2025/internal/timetable"
)

type selectorQuery struct {
	Value string `query:"value" validate:"max=200"`
}

type liveQuery struct {
	Day  string `query:"day" validate:"max=20"`
	Slot string `query:"slot" validate:"max=20"`
}

// selector parses ?value=; an oversized value is rejected as an invalid
// kind before it reaches the service.
func (s *Server) selector(c *fiber.Ctx, kind string) (string, error) {
	var q selectorQuery
	if err := c.QueryParser(&q); err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := s.validate.Struct(q); err != nil {
		return "", &timetable.SelectionError{Kind: kind, Value: q.Value}
	}
	return q.Value, nil
}

func (s *Server) byClassroom(c *fiber.Ctx) error {
	room, err := s.selector(c, "classroom")
	if err != nil {
		return err
	}
	grid, err := s.svc.ByClassroom(room)
	if err != nil {
		return err
	}
	return c.JSON(grid)
}

func (s *Server) byDay(c *fiber.Ctx) error {
	day, err := s.selector(c, "day")
	if err != nil {
		return err
	}
	schedule, err := s.svc.ByDay(day)
	if err != nil {
		return err
	}
	return c.JSON(schedule)
}

func (s *Server) bySubject(c *fiber.Ctx) error {
	subject, err := s.selector(c, "subject")
	if err != nil {
		return err
	}
	grid, err := s.svc.BySubject(subject)
	if err != nil {
		return err
	}
	return c.JSON(grid)
}

func (s *Server) byTeacher(c *fiber.Ctx) error {
	teacher, err := s.selector(c, "teacher")
	if err != nil {
		return err
	}
	grid, err := s.svc.ByTeacher(teacher)
	if err != nil {
		return err
	}
	return c.JSON(grid)
}

func (s *Server) byLabs(c *fiber.Ctx) error {
	lab, err := s.selector(c, "lab subject")
	if err != nil {
		return err
	}
	grid, err := s.svc.ByLabSubject(lab)
	if err != nil {
		return err
	}
	return c.JSON(grid)
}

func (s *Server) liveSchedule(c *fiber.Ctx) error {
	var q liveQuery
	if err := c.QueryParser(&q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := s.validate.Struct(q); err != nil {
		return &timetable.SelectionError{Kind: "day and time slot"}
	}
	live, err := s.svc.LiveSchedule(q.Day, q.Slot)
	if err != nil {
		return err
	}
	return c.JSON(live)
}

func (s *Server) liveNow(c *fiber.Ctx) error {
	live, err := s.svc.LiveNow()
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.JSON(live)
}

func (s *Server) options(c *fiber.Ctx) error {
	setPublicCache(c, 300)
	return c.JSON(s.svc.Options())
}

func (s *Server) health(c *fiber.Ctx) error {
	store := s.svc.Store()
	if err := store.Err(); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "degraded",
			"error":  err.Error(),
		})
	}
	if store.Empty() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "degraded",
			"error":  "no sessions loaded",
		})
	}
	return c.SendString("ok")
}

package web

import (
	"github.com/gin-gonic/gin"

	"todo/internal/tasklist"
)

// eventTasks is the SSE event name carrying a JSON snapshot of the list.
const eventTasks = "tasks"

// events streams the task list: once on connect, then after every change.
// Only the latest pending snapshot is kept for a slow client.
func (s *Server) events(c *gin.Context) {
	updates := make(chan []tasklist.Task, 1)
	unsubscribe := s.svc.Subscribe(func(tasks []tasklist.Task) {
		select {
		case <-updates:
		default:
		}
		updates <- tasks
	})
	defer unsubscribe()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	s.sendTasks(c, s.svc.Tasks())
	for {
		select {
		case <-c.Request.Context().Done():
			return
		case tasks := <-updates:
			s.sendTasks(c, tasks)
		}
	}
}

func (s *Server) sendTasks(c *gin.Context, tasks []tasklist.Task) {
	c.SSEvent(eventTasks, tasks)
	c.Writer.Flush()
}

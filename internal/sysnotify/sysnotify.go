package sysnotify

import (
	"errors"
	"os"
	"sync"

	log "github.com/sirupsen/logrus"
	"github.com/zijiren233/gencontainer/pqueue"
	"github.com/zijiren233/gencontainer/rwmap"
)

type NotifyType int

const (
	NotifyTypeEXIT NotifyType = iota + 1
	NotifyTypeRELOAD
)

// SysNotify runs registered tasks when the process receives a signal.
// Tasks of one type run in ascending priority order.
type SysNotify struct {
	c         chan os.Signal
	taskGroup rwmap.RWMap[NotifyType, *taskQueue]
	once      sync.Once
}

type taskQueue struct {
	queue *pqueue.PQueue[*Task]
	lock  sync.Mutex
}

type Task struct {
	Name       string
	NotifyType NotifyType
	Task       func() error
}

func NewTask(name string, notifyType NotifyType, task func() error) *Task {
	return &Task{
		Name:       name,
		NotifyType: notifyType,
		Task:       task,
	}
}

func New() *SysNotify {
	sn := &SysNotify{}
	sn.init()
	return sn
}

func (sn *SysNotify) Register(priority int, task *Task) error {
	if task == nil || task.Task == nil {
		return errors.New("task is nil")
	}
	if task.NotifyType == 0 {
		return errors.New("task notify type is 0")
	}
	tasks, _ := sn.taskGroup.LoadOrStore(task.NotifyType, &taskQueue{
		queue: pqueue.NewMinPriorityQueue[*Task](),
	})
	tasks.lock.Lock()
	defer tasks.lock.Unlock()
	tasks.queue.Push(priority, task)
	return nil
}

// Notify delivers s as if the process had received it.
func (sn *SysNotify) Notify(s os.Signal) {
	sn.c <- s
}

// Wait blocks until an exit signal arrives and its tasks have run. Reload
// tasks stay registered and run on every reload signal.
func (sn *SysNotify) Wait() {
	sn.once.Do(sn.wait)
}

func (sn *SysNotify) wait() {
	log.Info("wait sys notify")
	for s := range sn.c {
		log.Infof("receive sys notify: %v", s)
		switch parseSysNotifyType(s) {
		case NotifyTypeEXIT:
			if tq, ok := sn.taskGroup.Load(NotifyTypeEXIT); ok {
				log.Info("task: exit running...")
				tq.run(true)
			}
			log.Info("task: all done")
			return
		case NotifyTypeRELOAD:
			if tq, ok := sn.taskGroup.Load(NotifyTypeRELOAD); ok {
				log.Info("task: reload running...")
				tq.run(false)
			}
		}
	}
}

func (tq *taskQueue) run(drain bool) {
	tq.lock.Lock()
	defer tq.lock.Unlock()
	var kept []struct {
		p int
		t *Task
	}
	for tq.queue.Len() > 0 {
		p, task := tq.queue.Pop()
		task.run()
		if !drain {
			kept = append(kept, struct {
				p int
				t *Task
			}{p, task})
		}
	}
	for _, k := range kept {
		tq.queue.Push(k.p, k.t)
	}
}

func (t *Task) run() {
	defer func() {
		if err := recover(); err != nil {
			log.Errorf("task: %s panic has returned: %v", t.Name, err)
		}
	}()
	log.Infof("task: %s running", t.Name)
	if err := t.Task(); err != nil {
		log.Errorf("task: %s an error occurred: %v", t.Name, err)
		return
	}
	log.Infof("task: %s done", t.Name)
}

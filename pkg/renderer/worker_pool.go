package renderer

import (
	"math/rand"
	"sync"
)

// TileTask represents one tile rendered for one pass
type TileTask struct {
	TaskID  int // For deterministic ordering
	Tile    Tile
	Pass    int
	Samples int   // Samples per pixel to take in this pass
	Seed    int64 // Seed of the task's private generator
}

// TileResult contains the private buffer a task rendered into
type TileResult struct {
	TaskID int
	Task   TileTask
	Buffer *Framebuffer
}

// WorkerPool manages parallel tile rendering
type WorkerPool struct {
	taskQueue   chan TileTask
	resultQueue chan TileResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker handles individual tile rendering tasks
type Worker struct {
	ID          int
	raytracer   *Raytracer
	taskQueue   chan TileTask
	resultQueue chan TileResult
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// queueSize bounds the number of pending tasks and undelivered results.
func NewWorkerPool(raytracer *Raytracer, numWorkers, queueSize int) *WorkerPool {
	wp := &WorkerPool{
		taskQueue:   make(chan TileTask, queueSize),
		resultQueue: make(chan TileResult, queueSize),
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:          i,
			raytracer:   raytracer,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		})
	}

	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(&wp.wg)
	}
}

// Stop waits for queued tasks to finish, then closes the result queue
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue) // No more tasks
	wp.wg.Wait()        // Wait for workers to finish
	close(wp.resultQueue)
}

// SubmitTask submits a tile task to the worker pool
func (wp *WorkerPool) SubmitTask(task TileTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed tile result. ok is false once the pool is
// stopped and every result has been delivered.
func (wp *WorkerPool) GetResult() (TileResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// NumWorkers returns the number of workers in the pool
func (wp *WorkerPool) NumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		// Every task owns its generator and buffer, so workers share nothing mutable
		random := rand.New(rand.NewSource(task.Seed))
		buffer := NewFramebufferForBounds(task.Tile.Bounds)
		w.raytracer.renderBounds(buffer, task.Tile.Bounds, task.Samples, random)

		w.resultQueue <- TileResult{
			TaskID: task.TaskID,
			Task:   task,
			Buffer: buffer,
		}
	}
}
